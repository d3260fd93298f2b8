package model

// EntityData holds the versioned fields common to every entity type.
// Each row has exactly one kind-specific companion sharing its ID.
type EntityData struct {
	ID                uint       `gorm:"primaryKey"`
	Type              EntityType `gorm:"not null"`
	AliasSetID        *uint
	AliasSet          *AliasSet `gorm:"foreignKey:AliasSetID"`
	IdentifierSetID   *uint
	IdentifierSet     *IdentifierSet `gorm:"foreignKey:IdentifierSetID"`
	RelationshipSetID *uint
	RelationshipSet   *RelationshipSet `gorm:"foreignKey:RelationshipSetID"`
	DisambiguationID  *uint
	Disambiguation    *Disambiguation `gorm:"foreignKey:DisambiguationID"`
	AnnotationID      *uint
	Annotation        *Annotation `gorm:"foreignKey:AnnotationID"`

	Author       *AuthorData       `gorm:"foreignKey:ID;references:ID"`
	Edition      *EditionData      `gorm:"foreignKey:ID;references:ID"`
	EditionGroup *EditionGroupData `gorm:"foreignKey:ID;references:ID"`
	Publisher    *PublisherData    `gorm:"foreignKey:ID;references:ID"`
	Series       *SeriesData       `gorm:"foreignKey:ID;references:ID"`
	Work         *WorkData         `gorm:"foreignKey:ID;references:ID"`
}

func (EntityData) TableName() string {
	return "entity_data"
}

// DefaultAlias returns the alias designated for display, if loaded.
func (d *EntityData) DefaultAlias() *Alias {
	if d == nil || d.AliasSet == nil {
		return nil
	}
	return d.AliasSet.DefaultAlias
}

// Attributes returns the kind-specific row matching the data type.
func (d *EntityData) Attributes() any {
	switch d.Type {
	case EntityTypeAuthor:
		return d.Author
	case EntityTypeEdition:
		return d.Edition
	case EntityTypeEditionGroup:
		return d.EditionGroup
	case EntityTypePublisher:
		return d.Publisher
	case EntityTypeSeries:
		return d.Series
	case EntityTypeWork:
		return d.Work
	}
	return nil
}

// AttributesAssociation names the preload path of the kind-specific row.
func AttributesAssociation(t EntityType) string {
	return string(t)
}

type AuthorData struct {
	ID         uint   `gorm:"primaryKey;autoIncrement:false" json:"-"`
	AuthorType string `json:"type,omitempty"`
	Gender     string `json:"gender,omitempty"`
	BeginDate  string `json:"beginDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	Ended      bool   `json:"ended"`
}

func (AuthorData) TableName() string {
	return "author_data"
}

type EditionData struct {
	ID               uint   `gorm:"primaryKey;autoIncrement:false" json:"-"`
	EditionGroupBBID string `gorm:"column:edition_group_bbid;type:uuid" json:"editionGroupBbid,omitempty"`
	Format           string `json:"format,omitempty"`
	Status           string `json:"status,omitempty"`
	ReleaseDate      string `json:"releaseDate,omitempty"`
	Pages            *int   `json:"pages,omitempty"`
	Width            *int   `json:"width,omitempty"`
	Height           *int   `json:"height,omitempty"`
	Depth            *int   `json:"depth,omitempty"`
	Weight           *int   `json:"weight,omitempty"`
	// Languages is a comma separated list of ISO 639-3 codes.
	Languages string `json:"languages,omitempty"`
}

func (EditionData) TableName() string {
	return "edition_data"
}

type EditionGroupData struct {
	ID               uint   `gorm:"primaryKey;autoIncrement:false" json:"-"`
	EditionGroupType string `json:"type,omitempty"`
}

func (EditionGroupData) TableName() string {
	return "edition_group_data"
}

type PublisherData struct {
	ID            uint   `gorm:"primaryKey;autoIncrement:false" json:"-"`
	PublisherType string `json:"type,omitempty"`
	BeginDate     string `json:"beginDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	Ended         bool   `json:"ended"`
}

func (PublisherData) TableName() string {
	return "publisher_data"
}

type SeriesData struct {
	ID               uint       `gorm:"primaryKey;autoIncrement:false" json:"-"`
	OrderingType     string     `json:"orderingType,omitempty"`
	SeriesEntityType EntityType `json:"entityType,omitempty"`
}

func (SeriesData) TableName() string {
	return "series_data"
}

type WorkData struct {
	ID       uint   `gorm:"primaryKey;autoIncrement:false" json:"-"`
	WorkType string `json:"type,omitempty"`
	// Languages is a comma separated list of ISO 639-3 codes.
	Languages string `json:"languages,omitempty"`
}

func (WorkData) TableName() string {
	return "work_data"
}
