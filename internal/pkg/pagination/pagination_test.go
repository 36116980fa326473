package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		page  int
		limit int
		want  Meta
	}{
		{
			name: "first of three", total: 25, page: 1, limit: 12,
			want: Meta{Total: 25, Page: 1, LastPage: 3, HasNextPage: true, HasPrevPage: false},
		},
		{
			name: "middle page", total: 25, page: 2, limit: 12,
			want: Meta{Total: 25, Page: 2, LastPage: 3, HasNextPage: true, HasPrevPage: true},
		},
		{
			name: "last page", total: 25, page: 3, limit: 12,
			want: Meta{Total: 25, Page: 3, LastPage: 3, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "empty", total: 0, page: 1, limit: 12,
			want: Meta{Total: 0, Page: 1, LastPage: 0, HasNextPage: false, HasPrevPage: false},
		},
		{
			name: "exact multiple", total: 24, page: 2, limit: 12,
			want: Meta{Total: 24, Page: 2, LastPage: 2, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "defaults applied", total: 13, page: 0, limit: 0,
			want: Meta{Total: 13, Page: 1, LastPage: 2, HasNextPage: true, HasPrevPage: false},
		},
		{
			name: "page past the end", total: 5, page: 4, limit: 12,
			want: Meta{Total: 5, Page: 4, LastPage: 1, HasNextPage: false, HasPrevPage: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMeta(tt.total, tt.page, tt.limit))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{}.Offset())
	assert.Equal(t, 0, Params{Page: 1, Limit: 12}.Offset())
	assert.Equal(t, 24, Params{Page: 3, Limit: 12}.Offset())
	assert.Equal(t, 10, Params{Page: 2, Limit: 10}.Offset())
}

func TestOffsetStaysNonNegativeForHugePages(t *testing.T) {
	huge := Params{Page: 922337203685477581, Limit: MaxLimit}

	assert.Equal(t, MaxPage, huge.Normalize().Page)
	assert.Equal(t, (MaxPage-1)*MaxLimit, huge.Offset())
	assert.Positive(t, huge.Offset())
	assert.Equal(t, MaxLimit, Params{Page: 1, Limit: 1000}.Normalize().Limit)
}

func TestNewMetaProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.Int64Range(0, 10_000).Draw(t, "total")
		limit := rapid.IntRange(1, MaxLimit).Draw(t, "limit")
		page := rapid.IntRange(1, 200).Draw(t, "page")

		meta := NewMeta(total, page, limit)

		// every item fits on some page and no page is entirely wasted
		if int64(meta.LastPage)*int64(limit) < total {
			t.Fatalf("lastPage %d too small for total %d limit %d", meta.LastPage, total, limit)
		}
		if meta.LastPage > 0 && int64(meta.LastPage-1)*int64(limit) >= total {
			t.Fatalf("lastPage %d too large for total %d limit %d", meta.LastPage, total, limit)
		}
		if meta.HasNextPage != (page < meta.LastPage) {
			t.Fatalf("hasNextPage mismatch: %+v", meta)
		}
		if meta.HasPrevPage != (page > 1) {
			t.Fatalf("hasPrevPage mismatch: %+v", meta)
		}
		if total == 0 && (meta.LastPage != 0 || meta.HasNextPage) {
			t.Fatalf("empty result must have no pages: %+v", meta)
		}
	})
}
