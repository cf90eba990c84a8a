// File: pkg/session/menu_site.go
package session

import (
	"context"
	"strconv"
)

// selectSite lists the server's sites and reads the operator's pick by number.
func (s *Session) selectSite(ctx context.Context) (State, error) {
	if s.cur.sites == nil {
		sites, err := s.gw.LoadSites(ctx)
		if err != nil {
			s.con.Errorf("Error loading sites: %v", err)
			return PromptContinueOrQuit, nil
		}
		s.cur.sites = sites
	}
	if len(s.cur.sites) == 0 {
		s.con.Errorf("No sites found on %s.", s.creds.Host())
		return PromptContinueOrQuit, nil
	}

	s.showSites()
	input, err := s.con.ReadLine("Select a site by typing in the numerical value: ")
	if err != nil {
		return SelectSite, err
	}

	selection, err := strconv.Atoi(input)
	if err != nil || selection < 1 || selection > len(s.cur.sites) {
		s.con.Clear()
		s.con.Errorf("Not a valid site selection. Please select from the list of given sites.")
		return SelectSite, nil
	}
	s.cur.site = s.cur.sites[selection-1]
	s.con.Println(s.cur.site)
	return SelectTargetController, nil
}

func (s *Session) showSites() {
	s.con.Println()
	s.con.MenuLine("=", " Sites ")
	for i, site := range s.cur.sites {
		s.con.Printf(" %3d. %s\n", i+1, site)
	}
	s.con.MenuLine("=", s.creds.Host())
}
