// File: pkg/session/menu_controller.go
package session

import (
	"context"
	"fmt"
)

// selectTarget loads the chosen site's controllers and reads the controller the BDE is
// created on.
func (s *Session) selectTarget(ctx context.Context) (State, error) {
	if s.cur.controllers == nil {
		controllers, err := s.gw.LoadControllers(ctx, s.cur.site)
		if err != nil {
			s.con.Errorf("Error loading controllers at %s: %v", s.cur.site, err)
			return PromptContinueOrQuit, nil
		}
		s.cur.controllers = controllers
		s.con.Clear()
		s.showControllers()
	}
	if len(s.cur.controllers) == 0 {
		s.con.Errorf("No controllers found at %s.", s.cur.site)
		return PromptContinueOrQuit, nil
	}

	addr, _, ok, err := s.readController("Select the target controller (by address): ")
	if err != nil || !ok {
		return SelectTargetController, err
	}
	s.cur.target = addr
	return SelectRootController, nil
}

// selectRoot reads the controller the new BDE refers to.
func (s *Session) selectRoot() (State, error) {
	addr, name, ok, err := s.readController("Select a controller to make a BDE for in target controller (by address): ")
	if err != nil || !ok {
		return SelectRootController, err
	}
	s.cur.root = addr
	s.cur.rootName = name
	return CreateBDE, nil
}

// readController prompts for a controller address and echoes its display name.
// ok is false when the input is not an address of this site.
func (s *Session) readController(prompt string) (addr, name string, ok bool, err error) {
	input, err := s.con.ReadLine(prompt)
	if err != nil {
		return "", "", false, err
	}
	addr, name, ok = s.cur.controllers.Lookup(input)
	if !ok {
		s.con.Errorf("Not a valid controller selection.")
		return "", "", false, nil
	}
	s.con.Println(name)
	return addr, name, true, nil
}

func (s *Session) showControllers() {
	s.con.Println()
	s.con.MenuLine("=", fmt.Sprintf(" Controllers at %s ", s.cur.site))
	for _, addr := range s.cur.controllers.Addresses() {
		s.con.Printf(" %8s: %s\n", addr, s.cur.controllers[addr])
	}
	s.con.MenuLine("=", s.creds.Host())
}

// createBDE prints what is about to be created, then creates it.
func (s *Session) createBDE(ctx context.Context) State {
	s.con.Println()
	s.con.MenuLine("-", " New BDE ")
	s.con.Printf("  Site:              %s\n", s.cur.site)
	s.con.Printf("  Target controller: %s (%s)\n", s.cur.target, s.cur.controllers[s.cur.target])
	s.con.Printf("  Root controller:   %s (%s)\n", s.cur.root, s.cur.rootName)
	s.con.MenuLine("-", "")

	bde, err := s.gw.CreateBDE(ctx, s.cur.site, s.cur.target, s.cur.rootName)
	if err != nil {
		s.con.Errorf("Error creating BDE: %v", err)
		return PromptContinueOrQuit
	}
	s.con.Successf("Created %s %q on controller %s", bde.ID, bde.Name, bde.Controller)
	return PromptContinueOrQuit
}
