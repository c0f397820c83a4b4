package circulation

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/usrinivasan240-cpu/e-libaray.cto/model"
)

// fakeStore is an in-memory Store with real transaction semantics: Tx
// snapshots state up front and restores it when fn fails, so partial
// writes never survive.
type fakeStore struct {
	mu      sync.Mutex
	books   map[int64]*model.Book
	users   map[int64]bool
	issues  map[int64]*model.BookIssue
	nextIss int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		books:  map[int64]*model.Book{},
		users:  map[int64]bool{},
		issues: map[int64]*model.BookIssue{},
	}
}

func (f *fakeStore) addBook(id int64, st model.BookStatus) {
	f.books[id] = &model.Book{ID: id, Name: "Book", Status: st, CreatedAt: time.Now()}
}

func (f *fakeStore) snapshot() (map[int64]*model.Book, map[int64]*model.BookIssue) {
	books := make(map[int64]*model.Book, len(f.books))
	for k, v := range f.books {
		b := *v
		books[k] = &b
	}
	issues := make(map[int64]*model.BookIssue, len(f.issues))
	for k, v := range f.issues {
		is := *v
		if v.ReturnedDate != nil {
			t := *v.ReturnedDate
			is.ReturnedDate = &t
		}
		issues[k] = &is
	}
	return books, issues
}

func (f *fakeStore) Tx(ctx context.Context, fn func(TxOps) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	books, issues := f.snapshot()
	if err := fn(&fakeTx{f}); err != nil {
		f.books, f.issues = books, issues
		return err
	}
	return nil
}

func (f *fakeStore) ListIssued(ctx context.Context) ([]model.IssuedRow, error) {
	var out []model.IssuedRow
	for _, is := range f.issues {
		if is.ReturnedDate != nil {
			continue
		}
		out = append(out, model.IssuedRow{
			IssueID:    is.ID,
			BookID:     is.BookID,
			UserID:     is.UserID,
			IssuedDate: is.IssuedDate,
			DueDate:    is.DueDate,
		})
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			a, b := out[i], out[j]
			if b.IssuedDate.After(a.IssuedDate) ||
				(b.IssuedDate.Equal(a.IssuedDate) && b.IssueID > a.IssueID) {
				out[i], out[j] = b, a
			}
		}
	}
	return out, nil
}

func (f *fakeStore) BookWithActiveIssue(ctx context.Context, bookID int64) (*model.Book, *model.BookIssue, error) {
	b, ok := f.books[bookID]
	if !ok {
		return nil, nil, sql.ErrNoRows
	}
	bc := *b
	for _, is := range f.issues {
		if is.BookID == bookID && is.ReturnedDate == nil {
			ic := *is
			return &bc, &ic, nil
		}
	}
	return &bc, nil, nil
}

type fakeTx struct{ f *fakeStore }

func (t *fakeTx) BookForUpdate(ctx context.Context, bookID int64) (*model.Book, error) {
	b, ok := t.f.books[bookID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	bc := *b
	return &bc, nil
}

func (t *fakeTx) UserExists(ctx context.Context, userID int64) (bool, error) {
	return t.f.users[userID], nil
}

func (t *fakeTx) InsertIssue(ctx context.Context, is *model.BookIssue) (int64, error) {
	t.f.nextIss++
	cp := *is
	cp.ID = t.f.nextIss
	t.f.issues[cp.ID] = &cp
	return cp.ID, nil
}

func (t *fakeTx) SetBookStatus(ctx context.Context, bookID int64, st model.BookStatus) error {
	b, ok := t.f.books[bookID]
	if !ok {
		return sql.ErrNoRows
	}
	b.Status = st
	return nil
}

func (t *fakeTx) LatestOpenIssue(ctx context.Context, issueID, bookID int64) (*model.BookIssue, error) {
	var best *model.BookIssue
	for _, is := range t.f.issues {
		if is.ReturnedDate != nil {
			continue
		}
		if issueID != 0 && is.ID != issueID {
			continue
		}
		if bookID != 0 && is.BookID != bookID {
			continue
		}
		if best == nil ||
			is.IssuedDate.After(best.IssuedDate) ||
			(is.IssuedDate.Equal(best.IssuedDate) && is.ID > best.ID) {
			best = is
		}
	}
	if best == nil {
		return nil, sql.ErrNoRows
	}
	cp := *best
	return &cp, nil
}

func (t *fakeTx) CloseIssue(ctx context.Context, issueID int64, returnedAt time.Time) error {
	is, ok := t.f.issues[issueID]
	if !ok {
		return sql.ErrNoRows
	}
	is.ReturnedDate = &returnedAt
	return nil
}

// requireInvariant asserts status=ISSUED iff exactly one open issue
// references the book.
func requireInvariant(t *testing.T, f *fakeStore) {
	t.Helper()
	for id, b := range f.books {
		open := 0
		for _, is := range f.issues {
			if is.BookID == id && is.ReturnedDate == nil {
				open++
			}
		}
		if b.Status == model.BookIssued {
			require.Equal(t, 1, open, "book %d marked ISSUED", id)
		} else {
			require.Equal(t, 0, open, "book %d marked AVAILABLE", id)
		}
	}
}

func due() time.Time { return time.Now().UTC().Add(14 * 24 * time.Hour) }

// --- tests ---

func TestIssueBook_Success(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.addBook(1, model.BookAvailable)
	f.users[7] = true
	svc := New(f)

	is, err := svc.IssueBook(ctx, 1, 7, due())
	require.NoError(t, err)
	require.NotZero(t, is.ID)
	require.Equal(t, int64(1), is.BookID)
	require.Equal(t, int64(7), is.UserID)
	require.Nil(t, is.ReturnedDate)
	require.Equal(t, model.BookIssued, f.books[1].Status)
	requireInvariant(t, f)
}

func TestIssueBook_BookNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.users[7] = true
	svc := New(f)

	_, err := svc.IssueBook(ctx, 99, 7, due())
	require.Error(t, err)
	require.Equal(t, ErrBookNotFound, Code(err))
	require.Empty(t, f.issues)
}

func TestIssueBook_UserNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.addBook(1, model.BookAvailable)
	svc := New(f)

	_, err := svc.IssueBook(ctx, 1, 42, due())
	require.Error(t, err)
	require.Equal(t, ErrUserNotFound, Code(err))

	// the whole transaction rolled back
	require.Empty(t, f.issues)
	require.Equal(t, model.BookAvailable, f.books[1].Status)
	requireInvariant(t, f)
}

func TestIssueBook_ConflictWhenIssued(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.addBook(1, model.BookAvailable)
	f.users[7] = true
	f.users[8] = true
	svc := New(f)

	_, err := svc.IssueBook(ctx, 1, 7, due())
	require.NoError(t, err)

	before := len(f.issues)
	_, err = svc.IssueBook(ctx, 1, 8, due())
	require.Error(t, err)
	require.Equal(t, ErrNotAvailable, Code(err))
	require.Len(t, f.issues, before)
	requireInvariant(t, f)
}

func TestIssueBook_ConcurrentSameBook(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.addBook(1, model.BookAvailable)
	f.users[7] = true
	f.users[8] = true
	svc := New(f)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, uid := range []int64{7, 8} {
		wg.Add(1)
		go func(i int, uid int64) {
			defer wg.Done()
			_, errs[i] = svc.IssueBook(ctx, 1, uid, due())
		}(i, uid)
	}
	wg.Wait()

	ok, conflict := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case Code(err) == ErrNotAvailable:
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, conflict)
	require.Len(t, f.issues, 1)
	requireInvariant(t, f)
}

func TestReturnBook_NoSelector(t *testing.T) {
	svc := New(newFakeStore())
	_, err := svc.ReturnBook(context.Background(), 0, 0)
	require.Error(t, err)
	require.Equal(t, ErrNoSelector, Code(err))
}

func TestReturnBook_NoOpenIssue(t *testing.T) {
	f := newFakeStore()
	f.addBook(1, model.BookAvailable)
	svc := New(f)

	_, err := svc.ReturnBook(context.Background(), 0, 1)
	require.Error(t, err)
	require.Equal(t, ErrNoOpenIssue, Code(err))
}

func TestReturnBook_ByBookID(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.addBook(1, model.BookAvailable)
	f.users[7] = true
	svc := New(f)

	is, err := svc.IssueBook(ctx, 1, 7, due())
	require.NoError(t, err)

	ret, err := svc.ReturnBook(ctx, 0, 1)
	require.NoError(t, err)
	require.Equal(t, is.ID, ret.ID)
	require.NotNil(t, ret.ReturnedDate)
	require.Equal(t, model.BookAvailable, f.books[1].Status)
	requireInvariant(t, f)
}

// Returning by issue id alone must free the book the issue points at.
func TestReturnBook_ByIssueIDFreesMatchedBook(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.addBook(1, model.BookAvailable)
	f.addBook(2, model.BookAvailable)
	f.users[7] = true
	svc := New(f)

	is1, err := svc.IssueBook(ctx, 1, 7, due())
	require.NoError(t, err)
	_, err = svc.IssueBook(ctx, 2, 7, due())
	require.NoError(t, err)

	_, err = svc.ReturnBook(ctx, is1.ID, 0)
	require.NoError(t, err)
	require.Equal(t, model.BookAvailable, f.books[1].Status)
	require.Equal(t, model.BookIssued, f.books[2].Status)
	requireInvariant(t, f)
}

func TestReturnThenReissue(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.addBook(1, model.BookAvailable)
	f.users[7] = true
	f.users[8] = true
	svc := New(f)

	_, err := svc.IssueBook(ctx, 1, 7, due())
	require.NoError(t, err)
	_, err = svc.ReturnBook(ctx, 0, 1)
	require.NoError(t, err)

	is2, err := svc.IssueBook(ctx, 1, 8, due())
	require.NoError(t, err)
	require.Equal(t, int64(8), is2.UserID)
	require.Equal(t, model.BookIssued, f.books[1].Status)
	requireInvariant(t, f)
}

func TestListIssued_OpenOnlyNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.addBook(1, model.BookAvailable)
	f.addBook(2, model.BookAvailable)
	f.addBook(3, model.BookAvailable)
	f.users[7] = true
	svc := New(f)

	for _, bid := range []int64{1, 2, 3} {
		_, err := svc.IssueBook(ctx, bid, 7, due())
		require.NoError(t, err)
	}
	_, err := svc.ReturnBook(ctx, 0, 2)
	require.NoError(t, err)

	rows, err := svc.ListIssued(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, int64(3), rows[0].BookID)
	require.Equal(t, int64(1), rows[1].BookID)
}

func TestDetail(t *testing.T) {
	ctx := context.Background()
	f := newFakeStore()
	f.addBook(1, model.BookAvailable)
	f.users[7] = true
	svc := New(f)

	d, err := svc.Detail(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, d.ActiveIssue)

	is, err := svc.IssueBook(ctx, 1, 7, due())
	require.NoError(t, err)

	d, err = svc.Detail(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, d.ActiveIssue)
	require.Equal(t, is.ID, d.ActiveIssue.ID)

	_, err = svc.Detail(ctx, 404)
	require.Error(t, err)
	require.Equal(t, ErrBookNotFound, Code(err))
}
