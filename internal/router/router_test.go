package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/catalog-api/internal/config"
	"github.com/deppfellow/catalog-api/internal/database"
	"github.com/deppfellow/catalog-api/internal/database/dbtest"
	"github.com/deppfellow/catalog-api/internal/errs"
	"github.com/deppfellow/catalog-api/internal/handler"
	"github.com/deppfellow/catalog-api/internal/model"
	"github.com/deppfellow/catalog-api/internal/repository"
	"github.com/deppfellow/catalog-api/internal/server"
	"github.com/deppfellow/catalog-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RouterSuite struct {
	suite.Suite

	db     *gorm.DB
	router *echo.Echo
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.db = dbtest.Open(s.T())

	logger := zerolog.Nop()
	srv := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
		DB:     &database.Database{ORM: s.db},
	}

	services, err := service.NewService(srv, repository.New(s.db))
	s.Require().NoError(err)

	s.router = NewRouter(srv, handler.NewHandlers(srv, services), services)
}

func (s *RouterSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *RouterSuite) createCategory(name string) model.Category {
	rec := s.do(http.MethodPost, "/api/categories", fmt.Sprintf(`{"category_name":%q}`, name))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var c model.Category
	s.decode(rec, &c)
	return c
}

func (s *RouterSuite) TestCreateThenGetCategory() {
	created := s.createCategory("Shirts")
	s.NotZero(created.ID)
	s.NotNil(created.Products)

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/categories/%d", created.ID), "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got model.Category
	s.decode(rec, &got)
	s.Equal("Shirts", got.CategoryName)
	s.Empty(got.Products)
}

func (s *RouterSuite) TestCategoryWithProducts() {
	created := s.createCategory("Shoes")
	dbtest.SeedProducts(s.T(), s.db, &created.ID, "Loafer", "Sneaker")

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/categories/%d", created.ID), "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got model.Category
	s.decode(rec, &got)
	s.Require().Len(got.Products, 2)
	s.Equal("Loafer", got.Products[0].ProductName)
	s.Equal("9.99", got.Products[0].Price.StringFixed(2))
	s.Equal(created.ID, *got.Products[0].CategoryID)
}

func (s *RouterSuite) TestListCountsCreatedMinusDeleted() {
	a := s.createCategory("A")
	s.createCategory("B")
	s.createCategory("C")

	rec := s.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", a.ID), "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var result model.MutationResult
	s.decode(rec, &result)
	s.EqualValues(1, result.AffectedRows)

	rec = s.do(http.MethodGet, "/api/categories", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var list []model.Category
	s.decode(rec, &list)
	s.Len(list, 2)
}

func (s *RouterSuite) TestGetDeletedCategoryIs404() {
	c := s.createCategory("Gone")
	s.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", c.ID), "")

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/categories/%d", c.ID), "")
	s.Equal(http.StatusNotFound, rec.Code)

	var body errs.HTTPError
	s.decode(rec, &body)
	s.Equal("Category not found", body.Message)
}

func (s *RouterSuite) TestUpdateMissingCategoryAffectsNothing() {
	rec := s.do(http.MethodPut, "/api/categories/9999", `{"category_name":"Ghost"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var result model.MutationResult
	s.decode(rec, &result)
	s.EqualValues(0, result.AffectedRows)
}

func (s *RouterSuite) TestUpdateCategoryRenames() {
	c := s.createCategory("Old")

	rec := s.do(http.MethodPut, fmt.Sprintf("/api/categories/%d", c.ID), `{"id":77,"category_name":"New"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/categories/%d", c.ID), "")
	var got model.Category
	s.decode(rec, &got)
	s.Equal(c.ID, got.ID)
	s.Equal("New", got.CategoryName)
}

func (s *RouterSuite) TestCreateCategoryValidation() {
	rec := s.do(http.MethodPost, "/api/categories", `{"category_name":"   "}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	var body errs.HTTPError
	s.decode(rec, &body)
	s.Require().NotEmpty(body.Errors)
	s.Equal("category_name", body.Errors[0].Field)
}

func (s *RouterSuite) TestMalformedBodyIs400() {
	rec := s.do(http.MethodPost, "/api/tags", `{"tag_name":`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestNonNumericIDIs400() {
	rec := s.do(http.MethodGet, "/api/tags/abc", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestZeroIDIsNotFound() {
	rec := s.do(http.MethodGet, "/api/tags/0", "")
	s.Require().Equal(http.StatusNotFound, rec.Code, rec.Body.String())

	var body errs.HTTPError
	s.decode(rec, &body)
	s.Equal("Tag not found", body.Message)

	rec = s.do(http.MethodDelete, "/api/categories/-1", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var result model.MutationResult
	s.decode(rec, &result)
	s.EqualValues(0, result.AffectedRows)
}

func (s *RouterSuite) TestCreateTagWithProducts() {
	products := dbtest.SeedProducts(s.T(), s.db, nil, "Mug", "Plate")

	body := fmt.Sprintf(`{"tag_name":"kitchen","productIds":[%d,%d]}`, products[0].ID, products[1].ID)
	rec := s.do(http.MethodPost, "/api/tags", body)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var created model.Tag
	s.decode(rec, &created)
	s.Equal("kitchen", created.TagName)
	s.Empty(created.Products)
	s.EqualValues(2, dbtest.CountProductTags(s.T(), s.db, created.ID))

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/tags/%d", created.ID), "")
	var got model.Tag
	s.decode(rec, &got)
	s.Len(got.Products, 2)
}

func (s *RouterSuite) TestCreateTagWithUnknownProductsWritesNothing() {
	products := dbtest.SeedProducts(s.T(), s.db, nil, "Mug", "Plate")

	body := fmt.Sprintf(`{"tag_name":"kitchen","productIds":[%d,%d,9999]}`, products[0].ID, products[1].ID)
	rec := s.do(http.MethodPost, "/api/tags", body)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var errBody errs.HTTPError
	s.decode(rec, &errBody)
	s.Equal(service.CodeInvalidProductIDs, errBody.Code)
	s.Equal("Invalid product IDs: 9999", errBody.Message)

	var tags, links int64
	s.Require().NoError(s.db.Model(&model.Tag{}).Count(&tags).Error)
	s.Require().NoError(s.db.Model(&model.ProductTag{}).Count(&links).Error)
	s.Zero(tags)
	s.Zero(links)
}

func (s *RouterSuite) TestCreateTagWithoutProducts() {
	rec := s.do(http.MethodPost, "/api/tags", `{"tag_name":"sale"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var created model.Tag
	s.decode(rec, &created)
	s.EqualValues(0, dbtest.CountProductTags(s.T(), s.db, created.ID))
}

func (s *RouterSuite) TestTagUpdateAndDelete() {
	rec := s.do(http.MethodPost, "/api/tags", `{"tag_name":"old"}`)
	var created model.Tag
	s.decode(rec, &created)

	rec = s.do(http.MethodPut, fmt.Sprintf("/api/tags/%d", created.ID), `{"tag_name":"new"}`)
	var result model.MutationResult
	s.decode(rec, &result)
	s.EqualValues(1, result.AffectedRows)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/tags/%d", created.ID), "")
	s.decode(rec, &result)
	s.EqualValues(1, result.AffectedRows)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/tags/%d", created.ID), "")
	s.decode(rec, &result)
	s.EqualValues(0, result.AffectedRows)
}

func (s *RouterSuite) TestStatus() {
	rec := s.do(http.MethodGet, "/status", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Status string                    `json:"status"`
		Checks map[string]map[string]any `json:"checks"`
	}
	s.decode(rec, &body)
	s.Equal("healthy", body.Status)
	s.Equal("healthy", body.Checks["database"]["status"])
}

func (s *RouterSuite) TestDocs() {
	rec := s.do(http.MethodGet, "/docs", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "/static/openapi.json")

	rec = s.do(http.MethodGet, "/static/openapi.json", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "/api/tags")
}
