package labelstore_test

import (
	"context"
	"testing"

	postgresadapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/labelstore"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type LabelStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *labelstore.GormLabelStore
}

func (suite *LabelStoreIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgresadapter.Migrate(db))
	suite.store = labelstore.NewGormLabelStore(db, "https://console.example.com/")
}

func (suite *LabelStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + pgtest.Tables).Error)
}

func (suite *LabelStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LabelStoreIntegrationTestSuite) TestStoreAndLoad() {
	ctx := context.Background()

	url, err := suite.store.Store(ctx, []byte("%PDF-1.4 first"), "1001-F1-794600000001.pdf")
	suite.Require().NoError(err)
	suite.Equal("https://console.example.com/api/v1/labels/1001-F1-794600000001.pdf", url)

	doc, err := suite.store.Load(ctx, "1001-F1-794600000001.pdf")
	suite.Require().NoError(err)
	suite.Equal(labelstore.ContentTypePDF, doc.ContentType)
	suite.Equal([]byte("%PDF-1.4 first"), doc.Data)
}

func (suite *LabelStoreIntegrationTestSuite) TestStore_ReplacesSameName() {
	ctx := context.Background()

	_, err := suite.store.Store(ctx, []byte("old"), "a.pdf")
	suite.Require().NoError(err)
	_, err = suite.store.Store(ctx, []byte("new"), "a.pdf")
	suite.Require().NoError(err)

	doc, err := suite.store.Load(ctx, "a.pdf")
	suite.Require().NoError(err)
	suite.Equal([]byte("new"), doc.Data)
}

func (suite *LabelStoreIntegrationTestSuite) TestStore_EmptyData() {
	_, err := suite.store.Store(context.Background(), nil, "a.pdf")
	suite.Require().ErrorIs(err, errs.ErrStorageUpload)
}

func (suite *LabelStoreIntegrationTestSuite) TestLoad_NotFound() {
	_, err := suite.store.Load(context.Background(), "missing.pdf")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestLabelStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LabelStoreIntegrationTestSuite))
}
