package revision

import (
	"sort"
	"strings"

	"github.com/emrgen/bookbrainz/internal/diff"
	"github.com/emrgen/bookbrainz/internal/model"
)

// CommonSnapshot holds the displayed fields every entity type shares.
type CommonSnapshot struct {
	DefaultAlias   string
	Aliases        []string
	Identifiers    []string
	Disambiguation string
	Annotation     string
	Relationships  []string
}

func (s *CommonSnapshot) record() *diff.Record {
	return diff.NewRecord().
		Scalar("Default Alias", s.DefaultAlias).
		Strings("Aliases", s.Aliases).
		Strings("Identifiers", s.Identifiers).
		Scalar("Disambiguation", s.Disambiguation).
		Scalar("Annotation", s.Annotation).
		Strings("Relationships", s.Relationships)
}

type AuthorSnapshot struct {
	CommonSnapshot
	Type      string
	Gender    string
	BeginDate string
	EndDate   string
	Ended     bool
}

func (s *AuthorSnapshot) Fields() []diff.Field {
	return s.record().
		Scalar("Type", s.Type).
		Scalar("Gender", s.Gender).
		Scalar("Begin Date", s.BeginDate).
		Scalar("End Date", s.EndDate).
		Scalar("Ended", ended(s.Ended)).
		Fields()
}

type EditionSnapshot struct {
	CommonSnapshot
	EditionGroup string
	Format       string
	Status       string
	ReleaseDate  string
	Pages        *int
	Width        *int
	Height       *int
	Depth        *int
	Weight       *int
	Languages    []string
}

func (s *EditionSnapshot) Fields() []diff.Field {
	return s.record().
		Scalar("Edition Group", s.EditionGroup).
		Scalar("Format", s.Format).
		Scalar("Status", s.Status).
		Scalar("Release Date", s.ReleaseDate).
		Scalar("Page Count", s.Pages).
		Scalar("Width", s.Width).
		Scalar("Height", s.Height).
		Scalar("Depth", s.Depth).
		Scalar("Weight", s.Weight).
		Strings("Languages", s.Languages).
		Fields()
}

type EditionGroupSnapshot struct {
	CommonSnapshot
	Type string
}

func (s *EditionGroupSnapshot) Fields() []diff.Field {
	return s.record().Scalar("Type", s.Type).Fields()
}

type PublisherSnapshot struct {
	CommonSnapshot
	Type      string
	BeginDate string
	EndDate   string
	Ended     bool
}

func (s *PublisherSnapshot) Fields() []diff.Field {
	return s.record().
		Scalar("Type", s.Type).
		Scalar("Begin Date", s.BeginDate).
		Scalar("End Date", s.EndDate).
		Scalar("Ended", ended(s.Ended)).
		Fields()
}

type SeriesSnapshot struct {
	CommonSnapshot
	OrderingType string
	EntityType   string
}

func (s *SeriesSnapshot) Fields() []diff.Field {
	return s.record().
		Scalar("Ordering Type", s.OrderingType).
		Scalar("Series Type", s.EntityType).
		Fields()
}

type WorkSnapshot struct {
	CommonSnapshot
	Type      string
	Languages []string
}

func (s *WorkSnapshot) Fields() []diff.Field {
	return s.record().
		Scalar("Type", s.Type).
		Strings("Languages", s.Languages).
		Fields()
}

// NewSnapshot flattens a data row into its displayed fields. relationships are the
// already rendered relationship sentences. A nil data row has no snapshot.
func NewSnapshot(data *model.EntityData, relationships []string) diff.Snapshot {
	if data == nil {
		return nil
	}

	common := CommonSnapshot{Relationships: relationships}
	if alias := data.DefaultAlias(); alias != nil {
		common.DefaultAlias = aliasText(alias)
	}
	if data.AliasSet != nil {
		for _, alias := range data.AliasSet.Aliases {
			common.Aliases = append(common.Aliases, aliasText(alias))
		}
	}
	if data.IdentifierSet != nil {
		for _, identifier := range data.IdentifierSet.Identifiers {
			common.Identifiers = append(common.Identifiers, identifierText(identifier))
		}
	}
	if data.Disambiguation != nil {
		common.Disambiguation = data.Disambiguation.Comment
	}
	if data.Annotation != nil {
		common.Annotation = data.Annotation.Content
	}

	switch data.Type {
	case model.EntityTypeAuthor:
		s := &AuthorSnapshot{CommonSnapshot: common}
		if a := data.Author; a != nil {
			s.Type, s.Gender, s.BeginDate, s.EndDate, s.Ended = a.AuthorType, a.Gender, a.BeginDate, a.EndDate, a.Ended
		}
		return s
	case model.EntityTypeEdition:
		s := &EditionSnapshot{CommonSnapshot: common}
		if e := data.Edition; e != nil {
			s.EditionGroup, s.Format, s.Status, s.ReleaseDate = e.EditionGroupBBID, e.Format, e.Status, e.ReleaseDate
			s.Pages, s.Width, s.Height, s.Depth, s.Weight = e.Pages, e.Width, e.Height, e.Depth, e.Weight
			s.Languages = languages(e.Languages)
		}
		return s
	case model.EntityTypeEditionGroup:
		s := &EditionGroupSnapshot{CommonSnapshot: common}
		if e := data.EditionGroup; e != nil {
			s.Type = e.EditionGroupType
		}
		return s
	case model.EntityTypePublisher:
		s := &PublisherSnapshot{CommonSnapshot: common}
		if p := data.Publisher; p != nil {
			s.Type, s.BeginDate, s.EndDate, s.Ended = p.PublisherType, p.BeginDate, p.EndDate, p.Ended
		}
		return s
	case model.EntityTypeSeries:
		s := &SeriesSnapshot{CommonSnapshot: common}
		if se := data.Series; se != nil {
			s.OrderingType, s.EntityType = se.OrderingType, string(se.SeriesEntityType)
		}
		return s
	case model.EntityTypeWork:
		s := &WorkSnapshot{CommonSnapshot: common}
		if w := data.Work; w != nil {
			s.Type = w.WorkType
			s.Languages = languages(w.Languages)
		}
		return s
	}

	return &common
}

// Fields lets a bare CommonSnapshot stand in for data rows of an unknown type.
func (s *CommonSnapshot) Fields() []diff.Field {
	return s.record().Fields()
}

func aliasText(alias *model.Alias) string {
	if alias.Language != nil && alias.Language.Name != "" {
		return alias.Name + " (" + alias.Language.Name + ")"
	}
	return alias.Name
}

func identifierText(identifier *model.Identifier) string {
	if identifier.Type != nil && identifier.Type.Label != "" {
		return identifier.Type.Label + ": " + identifier.Value
	}
	return identifier.Value
}

func languages(list string) []string {
	var out []string
	for _, code := range strings.Split(list, ",") {
		if code = strings.TrimSpace(code); code != "" {
			out = append(out, code)
		}
	}
	sort.Strings(out)
	return out
}

// ended only reports a set flag; an entity that has not ended has no Ended key.
func ended(flag bool) any {
	if !flag {
		return nil
	}
	return true
}
