package model

type IdentifierType struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Label           string     `gorm:"not null" json:"label"`
	ValidationRegex string     `json:"validationRegex"`
	EntityType      EntityType `json:"entityType"`
}

func (IdentifierType) TableName() string {
	return "identifier_types"
}

type Identifier struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	TypeID uint            `gorm:"not null" json:"typeId"`
	Type   *IdentifierType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	Value  string          `gorm:"not null" json:"value"`
}

func (Identifier) TableName() string {
	return "identifiers"
}

type IdentifierSet struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Identifiers []*Identifier `gorm:"many2many:identifier_set__identifier;" json:"identifiers,omitempty"`
}

func (IdentifierSet) TableName() string {
	return "identifier_sets"
}
