package mongodb

import (
	"time"

	"github.com/phrazzld/question-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type paperDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Author    primitive.ObjectID `bson:"author"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// toDomain converts the document with an unpopulated author.
func (d paperDocument) toDomain() *domain.Paper {
	return &domain.Paper{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Author:    domain.AuthorID(d.Author.Hex()),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Email:          d.Email,
		HashedPassword: d.Password,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

func (d userDocument) profile() *domain.Author {
	return d.toDomain().Profile()
}
