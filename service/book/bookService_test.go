// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
	booksvc "github.com/usrinivasan240-cpu/e-libaray.cto/service/book"
)

type repoMock struct {
	createFn func(ctx context.Context, b *model.Book) (int64, error)
	listFn   func(ctx context.Context, category string) ([]model.Book, error)
	byIDFn   func(ctx context.Context, id int64) (*model.Book, error)
	updateFn func(ctx context.Context, b *model.Book) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) (int64, error) {
	return m.createFn(ctx, b)
}
func (m *repoMock) List(ctx context.Context, category string) ([]model.Book, error) {
	return m.listFn(ctx, category)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Book, error) { return m.byIDFn(ctx, id) }
func (m *repoMock) Update(ctx context.Context, b *model.Book) error         { return m.updateFn(ctx, b) }
func (m *repoMock) Delete(ctx context.Context, id int64) error              { return m.deleteFn(ctx, id) }

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	if _, err := s.Create(context.Background(), booksvc.CreateBookReq{AuthorName: "a", Category: "c"}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := s.Create(context.Background(), booksvc.CreateBookReq{Name: "n", Category: "c"}); err == nil {
		t.Fatal("expected error for empty author")
	}
	if _, err := s.Create(context.Background(), booksvc.CreateBookReq{Name: "n", AuthorName: "a"}); err == nil {
		t.Fatal("expected error for empty category")
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) (int64, error) {
			if b.Name != "Clean Code" || b.AuthorName != "Robert C. Martin" {
				return 0, errors.New("bad args")
			}
			if b.Status != model.BookAvailable {
				return 0, errors.New("new book must start AVAILABLE")
			}
			return 42, nil
		},
	}
	s := booksvc.New(m)
	b, err := s.Create(context.Background(), booksvc.CreateBookReq{
		Name:            "Clean Code",
		AuthorName:      "Robert C. Martin",
		Category:        "Programming",
		PublicationYear: 2008,
		Location:        "Shelf A3",
	})
	if err != nil || b.ID != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", b, err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	stored := &model.Book{
		ID: 7, Name: "Old", AuthorName: "Author", Category: "Cat",
		PublicationYear: 1999, Location: "S1", Status: model.BookIssued,
	}
	m := &repoMock{
		byIDFn:   func(ctx context.Context, id int64) (*model.Book, error) { cp := *stored; return &cp, nil },
		updateFn: func(ctx context.Context, b *model.Book) error { stored = b; return nil },
	}
	s := booksvc.New(m)

	b, err := s.Update(context.Background(), 7, booksvc.UpdateBookReq{Name: "New"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.Name != "New" || b.AuthorName != "Author" || b.Status != model.BookIssued {
		t.Fatalf("unexpected result: %+v", b)
	}
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		listFn:   func(ctx context.Context, category string) ([]model.Book, error) { return nil, nil },
		byIDFn:   func(ctx context.Context, id int64) (*model.Book, error) { return &model.Book{ID: id}, nil },
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	}
	s := booksvc.New(m)

	if _, err := s.List(context.Background(), ""); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if b, err := s.Get(context.Background(), 99); err != nil || b.ID != 99 {
		t.Fatalf("Get got %v %v", b, err)
	}
	if err := s.Delete(context.Background(), 99); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
