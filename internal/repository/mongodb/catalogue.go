package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/repository"
)

// ListCustomers returns every customer in store order.
func (r *MongoDBRepository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return findAll[models.Customer](ctx, r.collection(repository.CustomersCollection), bson.M{}, "list customers")
}

// GetCustomerByCode looks a customer up by exact code.
func (r *MongoDBRepository) GetCustomerByCode(ctx context.Context, code string) (models.Customer, error) {
	var customer models.Customer
	err := r.collection(repository.CustomersCollection).FindOne(ctx, bson.M{"CODE": code}).Decode(&customer)
	if isNoDocuments(err) {
		return models.Customer{}, fmt.Errorf("customer %q: %w", code, models.ErrNotFound)
	}
	if err != nil {
		return models.Customer{}, storeErr("get customer", err)
	}
	return customer, nil
}

// ListProducts returns the full catalogue.
func (r *MongoDBRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	return findAll[models.Product](ctx, r.collection(repository.ProductsCollection), bson.M{}, "list products")
}

// ListPackages returns every package.
func (r *MongoDBRepository) ListPackages(ctx context.Context) ([]models.Package, error) {
	return findAll[models.Package](ctx, r.collection(repository.PackagesCollection), bson.M{}, "list packages")
}

// InsertCustomers bulk inserts customers.
func (r *MongoDBRepository) InsertCustomers(ctx context.Context, customers []models.Customer) (int, error) {
	n, err := insertAll(ctx, r.collection(repository.CustomersCollection), customers, "insert customers")
	if err == nil {
		r.logger.Info("customers inserted", zap.Int("count", n))
	}
	return n, err
}

// InsertProducts bulk inserts catalogue products.
func (r *MongoDBRepository) InsertProducts(ctx context.Context, products []models.Product) (int, error) {
	n, err := insertAll(ctx, r.collection(repository.ProductsCollection), products, "insert products")
	if err == nil {
		r.logger.Info("products inserted", zap.Int("count", n))
	}
	return n, err
}

// InsertPackages bulk inserts package rows.
func (r *MongoDBRepository) InsertPackages(ctx context.Context, packages []models.Package) (int, error) {
	n, err := insertAll(ctx, r.collection(repository.PackagesCollection), packages, "insert packages")
	if err == nil {
		r.logger.Info("packages inserted", zap.Int("count", n))
	}
	return n, err
}
