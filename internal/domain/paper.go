package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Paper is a question paper authored by a user.
type Paper struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"   validate:"required"`
	Content   string    `json:"content" validate:"required"`
	Author    AuthorRef `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPaper creates a validated Paper. The ID and timestamps are assigned by the store.
func NewPaper(title, content, authorID string) (*Paper, error) {
	p := &Paper{
		Title:   title,
		Content: content,
		Author:  AuthorID(authorID),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that title, content and author are present.
func (p *Paper) Validate() error {
	if err := validateStruct("Paper", p); err != nil {
		return err
	}
	if strings.TrimSpace(p.Author.ID) == "" {
		return NewValidationError("Paper", "author", "is required", nil)
	}
	return nil
}

// Author is the public profile of a paper's author.
type Author struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthorRef references a paper's author. It serializes as the bare author
// identifier unless populated, in which case it serializes as the author's
// profile, or null when the referenced user no longer exists.
type AuthorRef struct {
	ID        string
	Profile   *Author
	populated bool
}

// AuthorID returns an unpopulated reference to the user with the given ID.
func AuthorID(id string) AuthorRef {
	return AuthorRef{ID: id}
}

// PopulatedAuthor returns a reference expanded to the given profile.
// A nil profile means the author was not found.
func PopulatedAuthor(id string, profile *Author) AuthorRef {
	return AuthorRef{ID: id, Profile: profile, populated: true}
}

// IsPopulated reports whether the reference was expanded to a profile.
func (a AuthorRef) IsPopulated() bool {
	return a.populated
}

// MarshalJSON implements json.Marshaler.
func (a AuthorRef) MarshalJSON() ([]byte, error) {
	if !a.populated {
		return json.Marshal(a.ID)
	}
	if a.Profile == nil {
		return []byte("null"), nil
	}
	return json.Marshal(a.Profile)
}

// UnmarshalJSON accepts both the bare identifier and the populated form.
func (a *AuthorRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = AuthorRef{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*a = AuthorID(id)
		return nil
	default:
		var profile Author
		if err := json.Unmarshal(data, &profile); err != nil {
			return err
		}
		*a = PopulatedAuthor(profile.ID, &profile)
		return nil
	}
}

// PaperPatch holds a partial update. Nil fields are left unchanged.
type PaperPatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// IsEmpty reports whether the patch changes no field.
func (p PaperPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}

// Validate rejects fields that are set to blank values.
func (p PaperPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("Paper", "title", "is required", nil)
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return NewValidationError("Paper", "content", "is required", nil)
	}
	return nil
}

// Apply copies the set fields onto paper.
func (p PaperPatch) Apply(paper *Paper) {
	if p.Title != nil {
		paper.Title = *p.Title
	}
	if p.Content != nil {
		paper.Content = *p.Content
	}
}
