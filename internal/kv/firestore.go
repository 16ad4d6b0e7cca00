package kv

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultFirestoreCollection is used when no collection is configured.
const DefaultFirestoreCollection = "tasknest"

// firestoreValue is the document shape of one key.
type firestoreValue struct {
	Namespace string    `firestore:"namespace"`
	Key       string    `firestore:"key"`
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// FirestoreStore keeps one document per key in a collection.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
	namespace  string
}

// OpenFirestore creates a client for projectID. The client honours
// FIRESTORE_EMULATOR_HOST.
func OpenFirestore(ctx context.Context, projectID, collection, namespace string) (*FirestoreStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project cannot be empty")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return NewFirestoreStore(client, collection, namespace), nil
}

// NewFirestoreStore wraps an existing client.
func NewFirestoreStore(client *firestore.Client, collection, namespace string) *FirestoreStore {
	if collection == "" {
		collection = DefaultFirestoreCollection
	}
	return &FirestoreStore{client: client, collection: collection, namespace: namespace}
}

// doc returns the document reference for key. Document IDs may not contain
// slashes, so the qualified key is path-escaped.
func (s *FirestoreStore) doc(key string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(url.PathEscape(Qualify(s.namespace, key)))
}

// Get implements Store.
func (s *FirestoreStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	snap, err := s.doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	var v firestoreValue
	if err := snap.DataTo(&v); err != nil {
		return "", false, fmt.Errorf("decode %q: %w", key, err)
	}
	return v.Value, true, nil
}

// Set implements Store.
func (s *FirestoreStore) Set(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.doc(key).Set(ctx, firestoreValue{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *FirestoreStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := s.doc(key).Delete(ctx); err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
