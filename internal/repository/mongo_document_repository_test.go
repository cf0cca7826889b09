package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/noah-isme/college-erp-api/internal/models"
)

func TestMongoDocumentRepositoryFind(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("converts identifiers and dates", func(mt *mtest.T) {
		var observed []string
		repo := NewMongoDocumentRepository(mt.DB, func(label string, _ time.Duration) { observed = append(observed, label) })

		courseID := primitive.NewObjectID()
		facultyID := primitive.NewObjectID()
		created := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "erp.courses", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: courseID},
			{Key: "code", Value: "191CAC701T"},
			{Key: "credits", Value: int32(3)},
			{Key: "facultyInCharge", Value: facultyID},
			{Key: "createdAt", Value: primitive.NewDateTimeFromTime(created)},
			{Key: "tags", Value: bson.A{"core", "theory"}},
		}))

		docs, err := repo.Find(context.Background(), models.CollectionCourses, models.FindOptions{Limit: 2})
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		assert.Equal(mt, courseID.Hex(), docs[0].ID())
		assert.Equal(mt, facultyID.Hex(), docs[0]["facultyInCharge"])
		assert.Equal(mt, created, docs[0][models.FieldCreatedAt])
		assert.Equal(mt, []interface{}{"core", "theory"}, docs[0]["tags"])
		assert.Equal(mt, []string{"mongo.find"}, observed)
	})

	mt.Run("surfaces command errors", func(mt *mtest.T) {
		repo := NewMongoDocumentRepository(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))

		_, err := repo.Find(context.Background(), models.CollectionStudents, models.FindOptions{Limit: 10})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "find students")
	})
}

func TestMongoDocumentRepositoryCount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns total", func(mt *mtest.T) {
		repo := NewMongoDocumentRepository(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "erp.courses", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(5)}}))

		total, err := repo.Count(context.Background(), models.CollectionCourses, nil)
		require.NoError(mt, err)
		assert.Equal(mt, int64(5), total)
	})
}

func TestMongoDocumentRepositoryFindOne(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewMongoDocumentRepository(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "erp.students", mtest.FirstBatch))

		_, err := repo.FindOne(context.Background(), models.CollectionStudents, models.Filter{"roll": 99})
		assert.ErrorIs(mt, err, models.ErrDocumentNotFound)
	})

	mt.Run("found by id", func(mt *mtest.T) {
		repo := NewMongoDocumentRepository(mt.DB, nil)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "erp.students", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "roll", Value: int32(43)},
		}))

		doc, err := repo.FindByID(context.Background(), models.CollectionStudents, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), doc.ID())
		roll, ok := doc.Number("roll")
		assert.True(mt, ok)
		assert.Equal(mt, 43.0, roll)
	})
}

func TestMongoDocumentRepositoryInsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id and timestamps", func(mt *mtest.T) {
		repo := NewMongoDocumentRepository(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		doc, err := repo.Insert(context.Background(), models.CollectionStudents, models.Document{"roll": 1, "fullName": "Asha"})
		require.NoError(mt, err)
		assert.NotEmpty(mt, doc.ID())
		assert.IsType(mt, time.Time{}, doc[models.FieldCreatedAt])
		assert.Equal(mt, doc[models.FieldCreatedAt], doc[models.FieldUpdatedAt])
	})

	mt.Run("maps duplicate key errors", func(mt *mtest.T) {
		repo := NewMongoDocumentRepository(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}))

		_, err := repo.Insert(context.Background(), models.CollectionStudents, models.Document{"roll": 1})
		assert.ErrorIs(mt, err, models.ErrDuplicateKey)
	})
}

func TestMongoDocumentRepositoryUpdate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns updated document", func(mt *mtest.T) {
		repo := NewMongoDocumentRepository(mt.DB, nil)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "status", Value: "approved"},
		}}))

		doc, err := repo.Update(context.Background(), models.CollectionLeaveRequests,
			models.Filter{models.FieldID: id.Hex(), "status": "pending"},
			models.Document{"status": "approved"})
		require.NoError(mt, err)
		assert.Equal(mt, "approved", doc["status"])
		assert.Equal(mt, id.Hex(), doc.ID())
	})
}

func TestToMongoFilterOperators(t *testing.T) {
	lo := 10.0
	id := primitive.NewObjectID()
	query, err := toMongoFilter(models.Filter{
		models.FieldID: id.Hex(),
		"fullName":     models.Contains("r.vi"),
		"roll":         models.Range{Min: &lo},
		"email":        models.Range{},
		"isActive":     true,
	})
	require.NoError(t, err)

	assert.Equal(t, id, query[models.FieldID])
	assert.Equal(t, primitive.Regex{Pattern: `r\.vi`, Options: "i"}, query["fullName"])
	assert.Equal(t, bson.M{"$gte": 10.0}, query["roll"])
	assert.NotContains(t, query, "email")
	assert.Equal(t, true, query["isActive"])
}

func TestToBSONValueConvertsReferences(t *testing.T) {
	id := primitive.NewObjectID()
	converted := toBSONValue(map[string]interface{}{
		"course": models.Ref(id.Hex()),
		"slots":  []interface{}{map[string]interface{}{"faculty": models.Ref("not-an-object-id")}},
	}).(bson.M)

	assert.Equal(t, id, converted["course"])
	slots := converted["slots"].(bson.A)
	assert.Equal(t, "not-an-object-id", slots[0].(bson.M)["faculty"])
}
