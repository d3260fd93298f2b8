package model

type Language struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	IsoCode3 string `gorm:"size:3;uniqueIndex" json:"isoCode3"`
}

func (Language) TableName() string {
	return "languages"
}

type Alias struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	SortName   string    `gorm:"not null" json:"sortName"`
	LanguageID *uint     `json:"languageId,omitempty"`
	Language   *Language `gorm:"foreignKey:LanguageID" json:"language,omitempty"`
	Primary    bool      `gorm:"not null;default:false" json:"primary"`
}

func (Alias) TableName() string {
	return "aliases"
}

// AliasSet groups the aliases of one entity data row. Exactly one member
// is the default alias, which need not be the primary one.
type AliasSet struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	DefaultAliasID *uint    `json:"defaultAliasId,omitempty"`
	DefaultAlias   *Alias   `gorm:"foreignKey:DefaultAliasID" json:"-"`
	Aliases        []*Alias `gorm:"many2many:alias_set__alias;" json:"aliases,omitempty"`
}

func (AliasSet) TableName() string {
	return "alias_sets"
}

type Disambiguation struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Comment string `gorm:"not null" json:"comment"`
}

func (Disambiguation) TableName() string {
	return "disambiguations"
}

type Annotation struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Content        string `gorm:"not null" json:"content"`
	LastRevisionID *uint  `json:"lastRevisionId,omitempty"`
}

func (Annotation) TableName() string {
	return "annotations"
}
