package booksvc

import (
	"context"
	"errors"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
)

type CreateBookReq struct {
	Name            string `json:"book_name" validate:"required"`
	AuthorName      string `json:"author_name" validate:"required"`
	Category        string `json:"category" validate:"required"`
	PublicationYear int64  `json:"publication_year" validate:"required,gt=0"`
	Location        string `json:"library_location"`
}

type UpdateBookReq struct {
	Name            string `json:"book_name"`
	AuthorName      string `json:"author_name"`
	Category        string `json:"category"`
	PublicationYear int64  `json:"publication_year"`
	Location        string `json:"library_location"`
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	List(ctx context.Context, category string) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, req CreateBookReq) (*model.Book, error)
	List(ctx context.Context, category string) ([]model.Book, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, id int64, req UpdateBookReq) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, req CreateBookReq) (*model.Book, error) {
	if req.Name == "" || req.AuthorName == "" || req.Category == "" {
		return nil, errors.New("invalid payload")
	}
	b := &model.Book{
		Name:            req.Name,
		AuthorName:      req.AuthorName,
		Category:        req.Category,
		PublicationYear: req.PublicationYear,
		Location:        req.Location,
		Status:          model.BookAvailable,
	}
	id, err := s.r.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ID = id
	return b, nil
}

func (s *service) List(ctx context.Context, category string) ([]model.Book, error) {
	return s.r.List(ctx, category)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Book, error) {
	return s.r.ByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateBookReq) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		b.Name = req.Name
	}
	if req.AuthorName != "" {
		b.AuthorName = req.AuthorName
	}
	if req.Category != "" {
		b.Category = req.Category
	}
	if req.PublicationYear > 0 {
		b.PublicationYear = req.PublicationYear
	}
	if req.Location != "" {
		b.Location = req.Location
	}
	if err := s.r.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.r.Delete(ctx, id)
}
