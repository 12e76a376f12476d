package warehouse

import (
	"depot/internal/models"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// ── Layouts ─────────────────────────────────────────────────

func (r *Repo) CreateLayout(l *models.Layout) error { return r.db.Create(l).Error }

// ListLayouts returns all layouts, most recently created first.
func (r *Repo) ListLayouts() ([]models.Layout, error) {
	var out []models.Layout
	err := r.db.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *Repo) GetLayout(id uint) (*models.Layout, error) {
	var l models.Layout
	if err := r.db.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// DeleteLayout removes a layout together with its groups and their
// locations. Child rows go first so an interrupted sequence never
// leaves dangling foreign keys; the whole cascade runs in one
// transaction.
func (r *Repo) DeleteLayout(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("layout_id = ?", id).Delete(&models.Location{}).Error; err != nil {
			return err
		}
		if err := tx.Where("layout_id = ?", id).Delete(&models.Group{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Layout{}, id).Error
	})
}

// ── Groups ──────────────────────────────────────────────────

func (r *Repo) GroupsByLayout(layoutID uint) ([]models.Group, error) {
	var out []models.Group
	err := r.db.Where("layout_id = ?", layoutID).Order("id").Find(&out).Error
	return out, err
}

func (r *Repo) GetGroup(id uint) (*models.Group, error) {
	var g models.Group
	if err := r.db.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGroupWithLocations inserts a group and its full location grid
// as one unit. build receives the assigned group ID, since locations
// carry it as a foreign key.
func (r *Repo) CreateGroupWithLocations(g *models.Group, build func(groupID uint) []models.Location) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		locs := build(g.ID)
		if len(locs) == 0 {
			return nil
		}
		return tx.CreateInBatches(locs, 200).Error
	})
}

// DeleteGroup removes a group and its locations, child rows first.
func (r *Repo) DeleteGroup(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.Location{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, id).Error
	})
}

// ── Locations ───────────────────────────────────────────────

func (r *Repo) CreateLocation(loc *models.Location) error { return r.db.Create(loc).Error }

func (r *Repo) LocationsByGroup(groupID uint) ([]models.Location, error) {
	var out []models.Location
	err := r.db.Where("group_id = ?", groupID).Order("id").Find(&out).Error
	return out, err
}

func (r *Repo) LocationsByLayout(layoutID uint) ([]models.Location, error) {
	var out []models.Location
	err := r.db.Where("layout_id = ?", layoutID).Order("id").Find(&out).Error
	return out, err
}

func (r *Repo) GetLocation(id uint) (*models.Location, error) {
	var loc models.Location
	if err := r.db.First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// UpdateLocation merges the given column/value changes into one row.
func (r *Repo) UpdateLocation(id uint, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.Model(&models.Location{}).Where("id = ?", id).Updates(changes).Error
}

func (r *Repo) DeleteLocation(id uint) error {
	return r.db.Delete(&models.Location{}, id).Error
}

// ── Integrity ───────────────────────────────────────────────

// OrphanReport lists rows whose parent no longer exists. Foreign keys
// are maintained by call discipline (deletes are child-first inside a
// transaction), so a non-empty report means something bypassed the
// repo.
type OrphanReport struct {
	GroupIDs    []uint `json:"groupIds"`
	LocationIDs []uint `json:"locationIds"`
}

func (rep *OrphanReport) Empty() bool {
	return len(rep.GroupIDs) == 0 && len(rep.LocationIDs) == 0
}

// Orphans scans for groups without a layout and locations without a
// group or layout.
func (r *Repo) Orphans() (*OrphanReport, error) {
	rep := &OrphanReport{GroupIDs: []uint{}, LocationIDs: []uint{}}

	if err := r.db.Model(&models.Group{}).
		Where("layout_id NOT IN (?)", r.db.Model(&models.Layout{}).Select("id")).
		Pluck("id", &rep.GroupIDs).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Location{}).
		Where("group_id NOT IN (?)", r.db.Model(&models.Group{}).Select("id")).
		Or("layout_id NOT IN (?)", r.db.Model(&models.Layout{}).Select("id")).
		Pluck("id", &rep.LocationIDs).Error; err != nil {
		return nil, err
	}
	return rep, nil
}
