package repository

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Nixhazel/fupre-housing-platform-sub000/internal/apperr"
)

// ReceiptRepository stores receipt images in GridFS. The core never
// inspects the bytes; proofs only carry the opaque file id.
type ReceiptRepository struct {
	DB *mongo.Database
}

func NewReceiptRepository(client *mongo.Client, dbName string) *ReceiptRepository {
	return &ReceiptRepository{DB: client.Database(dbName)}
}

func (r *ReceiptRepository) Upload(file io.Reader, filename, uploaderID string) (string, error) {
	bucket, err := gridfs.NewBucket(r.DB)
	if err != nil {
		return "", &apperr.ExternalServiceError{Service: "media-store", Err: err}
	}

	opts := options.GridFSUpload().SetMetadata(bson.M{"uploader_id": uploaderID})
	stream, err := bucket.OpenUploadStream(filename, opts)
	if err != nil {
		return "", &apperr.ExternalServiceError{Service: "media-store", Err: err}
	}
	defer stream.Close()

	if _, err := io.Copy(stream, file); err != nil {
		return "", &apperr.ExternalServiceError{Service: "media-store", Err: err}
	}

	return stream.FileID.(primitive.ObjectID).Hex(), nil
}

func (r *ReceiptRepository) Download(receiptID string) ([]byte, string, error) {
	bucket, err := gridfs.NewBucket(r.DB)
	if err != nil {
		return nil, "", &apperr.ExternalServiceError{Service: "media-store", Err: err}
	}

	objID, err := primitive.ObjectIDFromHex(receiptID)
	if err != nil {
		return nil, "", apperr.NewNotFound("receipt", receiptID)
	}

	stream, err := bucket.OpenDownloadStream(objID)
	if err != nil {
		return nil, "", apperr.NewNotFound("receipt", receiptID)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, "", &apperr.ExternalServiceError{Service: "media-store", Err: err}
	}

	name := stream.GetFile().Name
	return data, name, nil
}

// UploaderOf reads back who uploaded a receipt so downloads can be
// limited to the submitter and admins.
func (r *ReceiptRepository) UploaderOf(receiptID string) (string, error) {
	objID, err := primitive.ObjectIDFromHex(receiptID)
	if err != nil {
		return "", apperr.NewNotFound("receipt", receiptID)
	}

	var doc struct {
		Metadata struct {
			UploaderID string `bson:"uploader_id"`
		} `bson:"metadata"`
	}
	err = r.DB.Collection("fs.files").
		FindOne(context.Background(), bson.M{"_id": objID}).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", apperr.NewNotFound("receipt", receiptID)
	}
	if err != nil {
		return "", &apperr.ExternalServiceError{Service: "media-store", Err: err}
	}
	return doc.Metadata.UploaderID, nil
}
