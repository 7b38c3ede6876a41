package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/petcare/internal/domain/models"
)

// PetRepository is the ownership collaborator: pet management itself lives
// in another service, the supply engine only checks who owns a pet.
type PetRepository interface {
	VerifyOwnership(ctx context.Context, petID, callerID string) error
}

// VerifyOwnership confirms the caller owns the pet. A missing pet and a
// foreign pet both come back as not found so existence is never leaked.
func (r *MongoDBRepository) VerifyOwnership(ctx context.Context, petID, callerID string) error {
	filter := bson.M{"_id": petID, "owner_id": callerID}

	err := r.pets().FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to verify pet ownership: %w", err)
	}
	return nil
}
