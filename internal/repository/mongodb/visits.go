package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/repository"
)

// InsertVisit stores a new visit and returns the generated id.
func (r *MongoDBRepository) InsertVisit(ctx context.Context, visit models.Visit) (string, error) {
	visit.ID = ""
	if visit.Products == nil {
		visit.Products = []models.TallyEntry{}
	}

	res, err := r.collection(repository.VisitsCollection).InsertOne(ctx, visit)
	if err != nil {
		return "", storeErr("insert visit", err)
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	default:
		return fmt.Sprint(id), nil
	}
}

// GetVisit fetches one visit by id.
func (r *MongoDBRepository) GetVisit(ctx context.Context, id string) (models.Visit, error) {
	var visit models.Visit
	err := r.collection(repository.VisitsCollection).FindOne(ctx, idFilter(id)).Decode(&visit)
	if isNoDocuments(err) {
		return models.Visit{}, fmt.Errorf("visit %q: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Visit{}, storeErr("get visit", err)
	}
	return visit, nil
}

// ListVisitsByCustomer returns visits whose customer_code equals the code.
func (r *MongoDBRepository) ListVisitsByCustomer(ctx context.Context, customerCode string) ([]models.Visit, error) {
	return findAll[models.Visit](ctx, r.collection(repository.VisitsCollection), bson.M{"customer_code": customerCode}, "list customer visits")
}

// ListVisitsByDate returns visits recorded on the given YYYY-MM-DD date.
func (r *MongoDBRepository) ListVisitsByDate(ctx context.Context, date string) ([]models.Visit, error) {
	return findAll[models.Visit](ctx, r.collection(repository.VisitsCollection), bson.M{"date": date}, "list visits by date")
}

// ListOpenVisits returns visits not yet marked completed.
func (r *MongoDBRepository) ListOpenVisits(ctx context.Context) ([]models.Visit, error) {
	return findAll[models.Visit](ctx, r.collection(repository.VisitsCollection), bson.M{"completed": bson.M{"$ne": true}}, "list open visits")
}

// UpdateVisit applies a partial update with a single $set.
func (r *MongoDBRepository) UpdateVisit(ctx context.Context, id string, patch models.VisitPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	filter := idFilter(id)
	expected, guarded := patch.ExpectedProducts()
	if guarded {
		filter["products"] = productsGuard(expected)
	}

	res, err := r.collection(repository.VisitsCollection).UpdateOne(ctx, filter, bson.M{"$set": bson.M(patch.Fields())})
	if err != nil {
		return storeErr("update visit", err)
	}
	if res.MatchedCount == 0 {
		if guarded {
			return fmt.Errorf("visit %q tally changed or visit removed: %w", id, models.ErrConflict)
		}
		return fmt.Errorf("visit %q: %w", id, models.ErrNotFound)
	}

	r.logger.Debug("visit updated", zap.String("visit_id", id), zap.Int64("modified", res.ModifiedCount))
	return nil
}

// productsGuard matches a stored tally equal to expected. An empty tally
// also matches documents where the field is null or missing.
func productsGuard(expected []models.TallyEntry) interface{} {
	if len(expected) == 0 {
		return bson.M{"$in": bson.A{nil, bson.A{}}}
	}
	return expected
}
