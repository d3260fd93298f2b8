package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	tables := []any{
		&Language{},
		&Alias{},
		&AliasSet{},
		&IdentifierType{},
		&Identifier{},
		&IdentifierSet{},
		&RelationshipType{},
		&Relationship{},
		&RelationshipSet{},
		&Disambiguation{},
		&Annotation{},
		&EntityData{},
		&AuthorData{},
		&EditionData{},
		&EditionGroupData{},
		&PublisherData{},
		&SeriesData{},
		&WorkData{},
		&Revision{},
		&Entity{},
		&EntityRevision{},
		&EntityRedirect{},
	}

	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			return err
		}
	}

	return nil
}
