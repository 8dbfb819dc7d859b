package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/alexanderramin/horizon/internal/timeline"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

type Project struct {
	ID          string
	ShortID     string
	Name        string
	Description string
	Stage       ProjectStage
	StartDate   time.Time
	EndDate     time.Time
	Budget      float64
	ManagerID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateShortID checks the optional ShortID format: 3-6 uppercase letters
// followed by 2-4 digits (e.g. WEB01, INFRA0234). An empty ShortID is allowed.
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return nil
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. WEB01)", p.ShortID)
	}
	return nil
}

// ValidateWindow rejects projects whose end date is not after the start date.
func (p *Project) ValidateWindow() error {
	if !p.EndDate.After(p.StartDate) {
		return fmt.Errorf("end date %s must be after start date %s",
			p.EndDate.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// IsActive reports whether the project is still being worked, i.e. not
// closing or closed.
func (p *Project) IsActive() bool {
	return p.Stage != StageClosing && p.Stage != StageClosed
}

// Window returns the project's planned timeline window.
func (p *Project) Window() timeline.Window {
	return timeline.Window{Start: p.StartDate, End: p.EndDate}
}

// Timeline computes the project's timeline status at now.
func (p *Project) Timeline(now time.Time) timeline.Status {
	return timeline.Compute(p.StartDate, p.EndDate, now)
}
