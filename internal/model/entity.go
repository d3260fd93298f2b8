package model

import "time"

// Entity is the generic header shared by every concrete entity.
// The BBID never changes; data changes are recorded as new revisions.
type Entity struct {
	BBID             string     `gorm:"column:bbid;primaryKey;type:uuid"`
	Type             EntityType `gorm:"not null;index"`
	MasterRevisionID *uint
	CreatedAt        time.Time
}

func (Entity) TableName() string {
	return "entities"
}

// EntityRedirect is left behind at a merged-away BBID and points at the surviving one.
type EntityRedirect struct {
	SourceBBID string `gorm:"column:source_bbid;primaryKey;type:uuid"`
	TargetBBID string `gorm:"column:target_bbid;type:uuid;not null;index"`
}

func (EntityRedirect) TableName() string {
	return "entity_redirects"
}

// Revision is an append-only changeset touching one or more entities.
type Revision struct {
	ID        uint `gorm:"primaryKey"`
	EditorID  uint
	ParentID  *uint
	IsMerge   bool `gorm:"not null;default:false"`
	Note      string
	CreatedAt time.Time
}

func (Revision) TableName() string {
	return "revisions"
}

// EntityRevision points an entity at its data as of a revision.
// A nil DataID marks the entity as deleted in that revision.
type EntityRevision struct {
	RevisionID uint       `gorm:"primaryKey"`
	BBID       string     `gorm:"column:bbid;primaryKey;type:uuid;index"`
	Type       EntityType `gorm:"not null"`
	DataID     *uint
	IsMerge    bool        `gorm:"not null;default:false"`
	Revision   *Revision   `gorm:"foreignKey:RevisionID"`
	Data       *EntityData `gorm:"foreignKey:DataID"`
}

func (EntityRevision) TableName() string {
	return "entity_revisions"
}

// Deleted reports whether this snapshot is a tombstone.
func (e *EntityRevision) Deleted() bool {
	return e.DataID == nil
}
