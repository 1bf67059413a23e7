package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/studyhive-api/internal/models"
	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
)

// parseID converts a path identifier into an ObjectID.
func parseID(raw, label string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, appErrors.Wrap(err, appErrors.ErrInvalidID.Code, appErrors.ErrInvalidID.Status, "invalid "+label+" id")
	}
	return id, nil
}

// storeError maps repository failures onto client-facing errors.
func storeError(err error, notFound, failure string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, failure)
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

// writeError keeps typed errors raised inside write steps and wraps the rest.
func writeError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return storeError(err, "resource not found", message)
}

// requireMatch turns an update that matched nothing into NOT_FOUND.
func requireMatch(step WriteStep, notFound string) WriteStep {
	return func(ctx context.Context) (*models.WriteResult, error) {
		res, err := step(ctx)
		if err != nil {
			return nil, err
		}
		if res.Matched == 0 && res.Deleted == 0 && res.InsertedID == "" {
			return nil, appErrors.Clone(appErrors.ErrNotFound, notFound)
		}
		return res, nil
	}
}

func requireCaller(caller *models.JWTClaims) error {
	if caller == nil || caller.Email == "" {
		return appErrors.Clone(appErrors.ErrUnauthorized, "missing caller identity")
	}
	return nil
}

func isNotFound(err error) bool {
	return appErrors.Is(err, appErrors.ErrNotFound)
}
