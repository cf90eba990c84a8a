// File: pkg/session/session.go
package session

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"bdetool/pkg/console"
	"bdetool/pkg/eweb"
)

// State is a step of the interactive loop.
type State int

const (
	CollectCredentials State = iota
	Authenticate
	SelectSite
	SelectTargetController
	SelectRootController
	CreateBDE
	PromptContinueOrQuit
	Done
)

var stateNames = map[State]string{
	CollectCredentials:     "CollectCredentials",
	Authenticate:           "Authenticate",
	SelectSite:             "SelectSite",
	SelectTargetController: "SelectTargetController",
	SelectRootController:   "SelectRootController",
	CreateBDE:              "CreateBDE",
	PromptContinueOrQuit:   "PromptContinueOrQuit",
	Done:                   "Done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Gateway is the part of the enteliWEB API the session drives.
type Gateway interface {
	Authenticate(ctx context.Context) error
	LoadSites(ctx context.Context) ([]string, error)
	LoadControllers(ctx context.Context, site string) (eweb.Controllers, error)
	CreateBDE(ctx context.Context, site, target, rootName string) (*eweb.BDE, error)
}

var _ Gateway = (*eweb.Client)(nil)

// Dialer builds the gateway for the credentials the operator entered.
type Dialer func(creds eweb.Credentials) Gateway

// Config carries what a session needs besides the console.
type Config struct {
	// Defaults pre-fill the address and username prompts. Password is ignored.
	Defaults eweb.Credentials
	Dial     Dialer
	Log      *logrus.Entry
}

// cycle is what the operator picked since the last login.
type cycle struct {
	sites       []string
	site        string
	controllers eweb.Controllers
	target      string
	root        string
	rootName    string
}

// Session walks the operator from login to a created BDE, once per cycle,
// until they quit.
type Session struct {
	con   *console.Console
	cfg   Config
	log   *logrus.Entry
	creds eweb.Credentials
	gw    Gateway
	cur   cycle
}

// New creates a session on con.
func New(con *console.Console, cfg Config) *Session {
	log := cfg.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Session{con: con, cfg: cfg, log: log}
}

// Run drives the loop until the operator quits or input ends. Remote failures are reported
// on the console and never end the run; only console errors other than EOF are returned.
func (s *Session) Run(ctx context.Context) error {
	if s.cfg.Dial == nil {
		return errors.New("session has no gateway dialer")
	}

	state := CollectCredentials
	for state != Done {
		next, err := s.step(ctx, state)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.con.Println()
				s.log.Debug("input closed")
				return nil
			}
			return errors.Wrapf(err, "reading input in %s", state)
		}
		if next != state {
			s.log.WithFields(logrus.Fields{"from": state, "to": next}).Debug("state change")
		}
		state = next
	}
	return nil
}

func (s *Session) step(ctx context.Context, state State) (State, error) {
	switch state {
	case CollectCredentials:
		return s.collectCredentials()
	case Authenticate:
		return s.authenticate(ctx), nil
	case SelectSite:
		return s.selectSite(ctx)
	case SelectTargetController:
		return s.selectTarget(ctx)
	case SelectRootController:
		return s.selectRoot()
	case CreateBDE:
		return s.createBDE(ctx), nil
	case PromptContinueOrQuit:
		return s.promptContinue()
	default:
		return Done, nil
	}
}

func (s *Session) collectCredentials() (State, error) {
	addr, err := s.con.ReadLineDefault("IP address (leave empty if working on target server)", s.cfg.Defaults.Address)
	if err != nil {
		return CollectCredentials, err
	}
	user, err := s.con.ReadLineDefault("Username", s.cfg.Defaults.Username)
	if err != nil {
		return CollectCredentials, err
	}
	pass, err := s.con.ReadPassword("Password: ")
	if err != nil {
		return CollectCredentials, err
	}

	s.creds = eweb.Credentials{Address: addr, Username: user, Password: pass}
	s.gw = s.cfg.Dial(s.creds)
	s.log.WithFields(logrus.Fields{"host": s.creds.Host(), "user": user}).Debug("credentials collected")
	return Authenticate, nil
}

func (s *Session) authenticate(ctx context.Context) State {
	s.con.Clear()
	s.cur = cycle{}

	if err := s.gw.Authenticate(ctx); err != nil {
		s.con.Errorf("Login to %s failed: %v", s.creds.Host(), err)
		return PromptContinueOrQuit
	}
	s.con.Clear()
	return SelectSite
}

func (s *Session) promptContinue() (State, error) {
	input, err := s.con.ReadLine(`Press Q to quit or press "Enter" to continue: `)
	if err != nil {
		return PromptContinueOrQuit, err
	}
	if input == "q" || input == "Q" {
		return Done, nil
	}
	return Authenticate, nil
}
