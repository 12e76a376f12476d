package warehouse

import (
	"fmt"
	"strings"

	"depot/internal/models"
)

// AddressFormat selects how slot addresses are synthesized at group
// creation.
type AddressFormat string

const (
	// AddressRowCol produces "{group}-{row+1}-{col+1}".
	AddressRowCol AddressFormat = "ROW-COL"
	// AddressLetterNumber produces "{group}-{A..Z}-{col+1}".
	AddressLetterNumber AddressFormat = "LETTER-NUMBER"
)

// maxLetterRows bounds LETTER-NUMBER groups to the alphabet.
const maxLetterRows = 26

// ValidationError marks input the caller can fix. Handlers map it to
// HTTP 400; it never reaches the store.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Address synthesizes the human-readable address for one group cell.
// row and col are 0-based; addresses are 1-based.
func Address(format AddressFormat, groupName string, row, col int) string {
	if format == AddressLetterNumber {
		return fmt.Sprintf("%s-%c-%d", groupName, rune('A'+row), col+1)
	}
	return fmt.Sprintf("%s-%d-%d", groupName, row+1, col+1)
}

// GroupSpec is the creation request for a group and its location grid.
type GroupSpec struct {
	Name          string
	Column        int // 1-based anchor within the layout's columns
	Row           int // optional; stored for 2D visualizations, never required
	Rows          int // internal grid height
	Columns       int // internal grid width
	AddressFormat AddressFormat
}

// Service owns validation and the bulk-generation logic that sits
// above the data access layer.
type Service struct{ repo *Repo }

func NewService(r *Repo) *Service { return &Service{repo: r} }

// ── Layouts ─────────────────────────────────────────────────

func (s *Service) CreateLayout(name string, rows, columns int) (*models.Layout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("layout name is required")
	}
	if rows < 1 || columns < 1 {
		return nil, validationf("layout dimensions must be at least 1x1, got %dx%d", rows, columns)
	}
	l := &models.Layout{Name: name, Rows: rows, Columns: columns}
	if err := s.repo.CreateLayout(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Layouts() ([]models.Layout, error) { return s.repo.ListLayouts() }

func (s *Service) Layout(id uint) (*models.Layout, error) { return s.repo.GetLayout(id) }

func (s *Service) DeleteLayout(id uint) error {
	if _, err := s.repo.GetLayout(id); err != nil {
		return err
	}
	return s.repo.DeleteLayout(id)
}

// ── Groups ──────────────────────────────────────────────────

// CreateGroup validates the spec against the owning layout, then
// inserts the group plus every location of its [0,Rows)x[0,Columns)
// grid in one transaction. All locations start empty.
func (s *Service) CreateGroup(layoutID uint, in GroupSpec) (*models.Group, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationf("group name is required")
	}
	if in.Rows < 1 || in.Columns < 1 {
		return nil, validationf("group dimensions must be at least 1x1, got %dx%d", in.Rows, in.Columns)
	}
	format := in.AddressFormat
	switch format {
	case "":
		format = AddressRowCol
	case AddressRowCol, AddressLetterNumber:
	default:
		return nil, validationf("unknown address format %q", format)
	}
	if format == AddressLetterNumber && in.Rows > maxLetterRows {
		return nil, validationf("%s groups support at most %d rows, got %d", AddressLetterNumber, maxLetterRows, in.Rows)
	}

	layout, err := s.repo.GetLayout(layoutID)
	if err != nil {
		return nil, err
	}
	if in.Column < 1 || in.Column > layout.Columns {
		return nil, validationf("column %d is outside the layout (1..%d)", in.Column, layout.Columns)
	}

	g := &models.Group{
		LayoutID: layout.ID,
		Name:     name,
		Column:   in.Column,
		Row:      in.Row,
		Rows:     in.Rows,
		Columns:  in.Columns,
	}
	err = s.repo.CreateGroupWithLocations(g, func(groupID uint) []models.Location {
		locs := make([]models.Location, 0, in.Rows*in.Columns)
		for row := 0; row < in.Rows; row++ {
			for col := 0; col < in.Columns; col++ {
				locs = append(locs, models.Location{
					GroupID:  groupID,
					LayoutID: layout.ID,
					Row:      row,
					Column:   col,
					Address:  Address(format, name, row, col),
				})
			}
		}
		return locs
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) Groups(layoutID uint) ([]models.Group, error) {
	return s.repo.GroupsByLayout(layoutID)
}

func (s *Service) DeleteGroup(id uint) error {
	if _, err := s.repo.GetGroup(id); err != nil {
		return err
	}
	return s.repo.DeleteGroup(id)
}

// ── Locations ───────────────────────────────────────────────

func (s *Service) LocationsByGroup(groupID uint) ([]models.Location, error) {
	return s.repo.LocationsByGroup(groupID)
}

func (s *Service) LocationsByLayout(layoutID uint) ([]models.Location, error) {
	return s.repo.LocationsByLayout(layoutID)
}

// SetOccupied flips the occupancy flag of one location and returns the
// updated row. It is the only mutation locations support after
// creation.
func (s *Service) SetOccupied(id uint, occupied bool) (*models.Location, error) {
	if _, err := s.repo.GetLocation(id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateLocation(id, map[string]any{"is_occupied": occupied}); err != nil {
		return nil, err
	}
	return s.repo.GetLocation(id)
}

func (s *Service) DeleteLocation(id uint) error {
	if _, err := s.repo.GetLocation(id); err != nil {
		return err
	}
	return s.repo.DeleteLocation(id)
}

// Integrity runs the on-demand orphan scan.
func (s *Service) Integrity() (*OrphanReport, error) { return s.repo.Orphans() }
