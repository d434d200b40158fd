package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techieonvacation/ex-earning/internal/domain"
)

var testNow = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

func testOptions() []Option {
	n := 0
	return []Option{
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("item-%d", n)
		}),
	}
}

func strPtr(s string) *string { return &s }

func productTitles(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Title
	}
	return out
}

func productOrdersOf(products []domain.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.Order
	}
	return out
}

// seedSection creates a section with the given product titles, in order.
func seedSection(t *testing.T, repo Repository, title string, products ...string) (*domain.Section, []*domain.Product) {
	t.Helper()
	ctx := context.Background()

	section, err := repo.CreateSection(ctx, domain.SectionInput{Title: title})
	require.NoError(t, err)

	created := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		product, err := repo.CreateProduct(ctx, section.ID, domain.ProductInput{Title: p, Price: 10})
		require.NoError(t, err)
		created = append(created, product)
	}
	return section, created
}

// runRepositoryContract exercises behaviour every backend must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Run("CreateSection_AssignsNextOrder", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.CreateSection(ctx, domain.SectionInput{Title: "A"})
		require.NoError(t, err)
		second, err := repo.CreateSection(ctx, domain.SectionInput{Title: "B"})
		require.NoError(t, err)

		assert.Equal(t, 1, first.Order)
		assert.Equal(t, 2, second.Order)
		assert.Equal(t, domain.StatusActive, second.Status)
		assert.Equal(t, testNow, second.CreatedAt.UTC())
		assert.Empty(t, second.Products)

		count, err := repo.CountSections(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("CreateProduct_LinksToSection", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		section, products := seedSection(t, repo, "Viral", "one", "two")

		assert.Equal(t, 1, products[0].Order)
		assert.Equal(t, 2, products[1].Order)
		assert.Equal(t, section.ID, products[1].SectionID)

		views, err := repo.ListSections(ctx)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, []string{"one", "two"}, productTitles(views[0].Products))
		assert.Equal(t, []string{products[0].ID, products[1].ID}, views[0].Section.Products)
	})

	t.Run("CreateProduct_UnknownSection", func(t *testing.T) {
		repo := newRepo(t)

		product, err := repo.CreateProduct(context.Background(), "missing", domain.ProductInput{Title: "x"})

		assert.ErrorIs(t, err, ErrSectionNotFound)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, product)
	})

	t.Run("ListSections_EmptySectionHasNoProducts", func(t *testing.T) {
		repo := newRepo(t)
		seedSection(t, repo, "Empty")

		views, err := repo.ListSections(context.Background())

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.NotNil(t, views[0].Products)
		assert.Empty(t, views[0].Products)
	})

	t.Run("GetProduct", func(t *testing.T) {
		repo := newRepo(t)
		_, products := seedSection(t, repo, "S", "p")

		got, err := repo.GetProduct(context.Background(), products[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "p", got.Title)

		_, err = repo.GetProduct(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("UpdateSection_ChangesOnlyGivenFields", func(t *testing.T) {
		repo := newRepo(t)
		section, _ := seedSection(t, repo, "Old")

		updated, err := repo.UpdateSection(context.Background(), section.ID, domain.SectionPatch{Title: strPtr("New")})

		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, section.Order, updated.Order)
		assert.Equal(t, section.ID, updated.ID)
	})

	t.Run("UpdateSection_Missing", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.UpdateSection(context.Background(), "missing", domain.SectionPatch{Title: strPtr("x")})

		assert.ErrorIs(t, err, ErrSectionNotFound)
	})

	t.Run("UpdateProduct", func(t *testing.T) {
		repo := newRepo(t)
		section, products := seedSection(t, repo, "S", "p")
		price := 42.5

		updated, err := repo.UpdateProduct(context.Background(), section.ID, products[0].ID, domain.ProductPatch{Price: &price})

		require.NoError(t, err)
		assert.Equal(t, 42.5, updated.Price)
		assert.Equal(t, "p", updated.Title)
		assert.Equal(t, section.ID, updated.SectionID)

		_, err = repo.UpdateProduct(context.Background(), section.ID, "missing", domain.ProductPatch{Price: &price})
		assert.ErrorIs(t, err, ErrProductNotFound)
		_, err = repo.UpdateProduct(context.Background(), "missing", products[0].ID, domain.ProductPatch{Price: &price})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("DeleteProduct_ReindexesSiblings", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		section, products := seedSection(t, repo, "S", "p1", "p2", "p3", "p4")

		err := repo.DeleteProduct(ctx, section.ID, products[1].ID)
		require.NoError(t, err)

		views, err := repo.ListSections(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p3", "p4"}, productTitles(views[0].Products))
		assert.Equal(t, []int{1, 2, 3}, productOrdersOf(views[0].Products))
		assert.NotContains(t, views[0].Section.Products, products[1].ID)

		err = repo.DeleteProduct(ctx, section.ID, products[1].ID)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("DeleteSection_CascadesAndReindexes", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		seedSection(t, repo, "A")
		b, bProducts := seedSection(t, repo, "B", "b1", "b2")
		seedSection(t, repo, "C")

		require.NoError(t, repo.DeleteSection(ctx, b.ID))

		views, err := repo.ListSections(ctx)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "A", views[0].Title)
		assert.Equal(t, 1, views[0].Order)
		assert.Equal(t, "C", views[1].Title)
		assert.Equal(t, 2, views[1].Order)

		_, err = repo.GetProduct(ctx, bProducts[0].ID)
		assert.ErrorIs(t, err, ErrProductNotFound)

		assert.ErrorIs(t, repo.DeleteSection(ctx, b.ID), ErrSectionNotFound)
	})

	t.Run("ReorderProducts_SubsetReturnsListedOnly", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		section, products := seedSection(t, repo, "S", "a", "b", "c")

		got, err := repo.ReorderProducts(ctx, section.ID, []string{products[2].ID, products[0].ID})

		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, productTitles(got))
		assert.Equal(t, []int{1, 2}, productOrdersOf(got))

		views, err := repo.ListSections(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, productTitles(views[0].Products))
		assert.Equal(t, []int{1, 2, 3}, productOrdersOf(views[0].Products))
		assert.Equal(t, []string{products[2].ID, products[0].ID, products[1].ID}, views[0].Section.Products)
	})

	t.Run("ReorderProducts_InfersSection", func(t *testing.T) {
		repo := newRepo(t)
		_, products := seedSection(t, repo, "S", "a", "b")

		got, err := repo.ReorderProducts(context.Background(), "", []string{"ghost", products[1].ID, products[0].ID})

		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, productTitles(got))
	})

	t.Run("ReorderProducts_UnknownSection", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.ReorderProducts(context.Background(), "missing", []string{"a"})

		assert.ErrorIs(t, err, ErrSectionNotFound)
	})

	t.Run("ReorderSections", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		a, _ := seedSection(t, repo, "A")
		b, _ := seedSection(t, repo, "B")
		c, _ := seedSection(t, repo, "C")

		got, err := repo.ReorderSections(ctx, []string{c.ID, a.ID, b.ID})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"C", "A", "B"}, []string{got[0].Title, got[1].Title, got[2].Title})

		views, err := repo.ListSections(ctx)
		require.NoError(t, err)
		assert.Equal(t, "C", views[0].Title)
		assert.Equal(t, 3, views[2].Order)
	})

	t.Run("ListProducts", func(t *testing.T) {
		repo := newRepo(t)
		seedSection(t, repo, "A", "a1")
		seedSection(t, repo, "B", "b1", "b2")

		products, err := repo.ListProducts(context.Background())

		require.NoError(t, err)
		assert.Len(t, products, 3)
	})
}
