package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/catalog-api/internal/database/dbtest"
	"github.com/deppfellow/catalog-api/internal/model"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RepositorySuite struct {
	suite.Suite
	db    *gorm.DB
	repos *Repositories
	ctx   context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.db = dbtest.Open(s.T())
	s.repos = New(s.db)
	s.ctx = context.Background()
}

func (s *RepositorySuite) createCategory(name string) *model.Category {
	category := &model.Category{CategoryName: name}
	s.Require().NoError(s.repos.Categories().Create(s.ctx, category))
	s.Require().NotZero(category.ID)
	return category
}

func (s *RepositorySuite) TestCategoryCreateAndGet() {
	category := s.createCategory("Shirts")
	dbtest.SeedProducts(s.T(), s.db, &category.ID, "Plain Tee", "Striped Tee")

	got, err := s.repos.Categories().GetByID(s.ctx, category.ID)
	s.Require().NoError(err)

	s.Equal("Shirts", got.CategoryName)
	s.Require().Len(got.Products, 2)
	s.Equal("Plain Tee", got.Products[0].ProductName)
	s.Equal("9.99", got.Products[0].Price.StringFixed(2))
	s.Require().NotNil(got.Products[0].CategoryID)
	s.Equal(category.ID, *got.Products[0].CategoryID)
}

func (s *RepositorySuite) TestCategoryListIncludesEmptyProducts() {
	s.createCategory("Shorts")
	s.createCategory("Hats")

	categories, err := s.repos.Categories().List(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(categories, 2)
	s.Equal("Shorts", categories[0].CategoryName)
	s.NotNil(categories[1].Products)
	s.Empty(categories[1].Products)
}

func (s *RepositorySuite) TestCategoryGetMissing() {
	_, err := s.repos.Categories().GetByID(s.ctx, 404)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositorySuite) TestCategoryUpdate() {
	category := s.createCategory("Sneakers")

	affected, err := s.repos.Categories().Update(s.ctx, category.ID, "Shoes")
	s.Require().NoError(err)
	s.EqualValues(1, affected)

	got, err := s.repos.Categories().GetByID(s.ctx, category.ID)
	s.Require().NoError(err)
	s.Equal("Shoes", got.CategoryName)

	affected, err = s.repos.Categories().Update(s.ctx, 999, "Nothing")
	s.Require().NoError(err)
	s.EqualValues(0, affected)
}

func (s *RepositorySuite) TestCategoryDelete() {
	category := s.createCategory("Bags")

	affected, err := s.repos.Categories().Delete(s.ctx, category.ID)
	s.Require().NoError(err)
	s.EqualValues(1, affected)

	_, err = s.repos.Categories().GetByID(s.ctx, category.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	affected, err = s.repos.Categories().Delete(s.ctx, category.ID)
	s.Require().NoError(err)
	s.EqualValues(0, affected)
}

func (s *RepositorySuite) TestTagProductsThroughJoinTable() {
	products := dbtest.SeedProducts(s.T(), s.db, nil, "Vinyl", "Cassette", "CD")

	tag := &model.Tag{TagName: "music"}
	s.Require().NoError(s.repos.Tags().Create(s.ctx, tag))
	s.Require().NoError(s.repos.Tags().AddProducts(s.ctx, model.NewProductTags(tag.ID, []int{products[2].ID, products[0].ID})))

	got, err := s.repos.Tags().GetByID(s.ctx, tag.ID)
	s.Require().NoError(err)
	s.Require().Len(got.Products, 2)
	s.Equal(products[0].ID, got.Products[0].ID)
	s.Equal(products[2].ID, got.Products[1].ID)

	tags, err := s.repos.Tags().List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tags, 1)
	s.Len(tags[0].Products, 2)
}

func (s *RepositorySuite) TestTagAddProductsRejectsDuplicatePair() {
	products := dbtest.SeedProducts(s.T(), s.db, nil, "Vinyl")

	tag := &model.Tag{TagName: "music"}
	s.Require().NoError(s.repos.Tags().Create(s.ctx, tag))

	rows := model.NewProductTags(tag.ID, []int{products[0].ID})
	s.Require().NoError(s.repos.Tags().AddProducts(s.ctx, rows))
	s.Error(s.repos.Tags().AddProducts(s.ctx, rows))
}

func (s *RepositorySuite) TestTagUpdateAndDelete() {
	tag := &model.Tag{TagName: "pop"}
	s.Require().NoError(s.repos.Tags().Create(s.ctx, tag))

	affected, err := s.repos.Tags().Update(s.ctx, tag.ID, "pop music")
	s.Require().NoError(err)
	s.EqualValues(1, affected)

	affected, err = s.repos.Tags().Delete(s.ctx, tag.ID)
	s.Require().NoError(err)
	s.EqualValues(1, affected)

	_, err = s.repos.Tags().GetByID(s.ctx, tag.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositorySuite) TestProductExistingIDs() {
	products := dbtest.SeedProducts(s.T(), s.db, nil, "Lamp", "Desk")

	found, err := s.repos.Products().ExistingIDs(s.ctx, []int{products[0].ID, 999, products[1].ID})
	s.Require().NoError(err)
	s.ElementsMatch([]int{products[0].ID, products[1].ID}, found)

	found, err = s.repos.Products().ExistingIDs(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *RepositorySuite) TestTransactionRollsBack() {
	errAbort := errors.New("abort")

	err := s.repos.Transaction(s.ctx, func(tx Store) error {
		if err := tx.Tags().Create(s.ctx, &model.Tag{TagName: "orphan"}); err != nil {
			return err
		}
		return errAbort
	})
	s.ErrorIs(err, errAbort)

	tags, err := s.repos.Tags().List(s.ctx)
	s.Require().NoError(err)
	s.Empty(tags)
}

func (s *RepositorySuite) TestTransactionCommits() {
	err := s.repos.Transaction(s.ctx, func(tx Store) error {
		return tx.Tags().Create(s.ctx, &model.Tag{TagName: "kept"})
	})
	s.Require().NoError(err)

	tags, err := s.repos.Tags().List(s.ctx)
	s.Require().NoError(err)
	s.Len(tags, 1)
}
