package model

// RelationshipType describes a kind of link between two entity types.
// LinkPhrase reads from source to target, ReverseLinkPhrase from target to source.
type RelationshipType struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Label             string     `gorm:"not null" json:"label"`
	LinkPhrase        string     `gorm:"not null" json:"linkPhrase"`
	ReverseLinkPhrase string     `gorm:"not null" json:"reverseLinkPhrase"`
	SourceEntityType  EntityType `gorm:"not null" json:"sourceEntityType"`
	TargetEntityType  EntityType `gorm:"not null" json:"targetEntityType"`
	Description       string     `json:"description,omitempty"`
}

func (RelationshipType) TableName() string {
	return "relationship_types"
}

// Relationship rows are immutable and shared between relationship sets.
type Relationship struct {
	ID         uint              `gorm:"primaryKey"`
	TypeID     uint              `gorm:"not null"`
	Type       *RelationshipType `gorm:"foreignKey:TypeID"`
	SourceBBID string            `gorm:"column:source_bbid;type:uuid;not null;index"`
	TargetBBID string            `gorm:"column:target_bbid;type:uuid;not null;index"`
}

func (Relationship) TableName() string {
	return "relationships"
}

type RelationshipSet struct {
	ID            uint            `gorm:"primaryKey"`
	Relationships []*Relationship `gorm:"many2many:relationship_set__relationship;"`
}

func (RelationshipSet) TableName() string {
	return "relationship_sets"
}
