// Package mongo implements the contact store on MongoDB.
//
// Each contact is one document with an embedded phones array. Batch submits
// run inside a session transaction; transactions need a replica set, so on
// standalone deployments batch submits fail and callers fall back per contact.
package mongo

import (
	"context"
	"errors"
	"time"

	perr "numwash/internal/platform/errors"
	"numwash/internal/services/cleanup/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ContactsCollection is the collection holding contact documents
const ContactsCollection = "contacts"

// Config for the Mongo contact store
type Config struct {
	URL      string
	Database string
}

type phoneDoc struct {
	Label string `bson:"label"`
	Raw   string `bson:"raw"`
}

type contactDoc struct {
	ID          string     `bson:"_id"`
	DisplayName string     `bson:"display_name"`
	Phones      []phoneDoc `bson:"phones"`
}

// Store implements domain.StorePort against MongoDB
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ domain.StorePort = (*Store)(nil)

// Open connects, pings the primary and returns a ready store
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "contactstore/mongo: URL is required")
	}
	if cfg.Database == "" {
		cfg.Database = "numwash"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "mongo connect failed")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "mongo ping failed")
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Close disconnects the underlying client
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Ping reports whether the primary is reachable, for readiness probes
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) coll() *mongo.Collection { return s.db.Collection(ContactsCollection) }

// ListContactsWithPhones implements domain.StorePort
func (s *Store) ListContactsWithPhones(ctx context.Context) ([]domain.StoredContact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "contact store list failed")
	}
	defer cur.Close(ctx)

	var out []domain.StoredContact
	for cur.Next(ctx) {
		var d contactDoc
		if err := cur.Decode(&d); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "contact decode failed")
		}
		out = append(out, fromDoc(d))
	}
	if err := cur.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "contact store list failed")
	}
	return out, nil
}

// FetchContact implements domain.StorePort
func (s *Store) FetchContact(ctx context.Context, id string) (domain.StoredContact, error) {
	var d contactDoc
	if err := s.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.StoredContact{}, perr.NotFoundf("contact %q not found", id)
		}
		return domain.StoredContact{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "contact store fetch failed")
	}
	return fromDoc(d), nil
}

// SubmitBatch implements domain.StorePort; all mutations commit or none do
func (s *Store) SubmitBatch(ctx context.Context, ms []domain.Mutation) error {
	if len(ms) == 0 {
		return nil
	}

	sess, err := s.client.StartSession()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeBatchFailed, "mongo session start failed")
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		for _, m := range ms {
			if err := s.setPhones(sc, m); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeBatchFailed, "batch of %d contacts rejected", len(ms))
	}
	return nil
}

// SubmitOne implements domain.StorePort
func (s *Store) SubmitOne(ctx context.Context, m domain.Mutation) error {
	if err := s.setPhones(ctx, m); err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return err
		}
		return perr.Wrapf(err, perr.ErrorCodeRecordFailed, "contact %s rejected", m.ContactID)
	}
	return nil
}

// setPhones replaces the embedded phone array on one contact document
func (s *Store) setPhones(ctx context.Context, m domain.Mutation) error {
	docs := make([]phoneDoc, 0, len(m.Phones))
	for _, p := range m.Phones {
		docs = append(docs, phoneDoc{Label: p.Label, Raw: p.Raw})
	}
	res, err := s.coll().UpdateOne(ctx,
		bson.M{"_id": m.ContactID},
		bson.M{"$set": bson.M{"phones": docs}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return perr.NotFoundf("contact %q not found", m.ContactID)
	}
	return nil
}

// SeedContacts upserts contacts wholesale; used by jobs and tests to load fixtures
func (s *Store) SeedContacts(ctx context.Context, cs []domain.StoredContact) error {
	for _, c := range cs {
		d := toDoc(c)
		_, err := s.coll().ReplaceOne(ctx,
			bson.M{"_id": d.ID}, d,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnavailable, "seed contact %s failed", c.ID)
		}
	}
	return nil
}

func fromDoc(d contactDoc) domain.StoredContact {
	c := domain.StoredContact{ID: d.ID, DisplayName: d.DisplayName}
	for _, p := range d.Phones {
		c.Phones = append(c.Phones, domain.StoredPhone{Label: p.Label, Raw: p.Raw})
	}
	return c
}

func toDoc(c domain.StoredContact) contactDoc {
	d := contactDoc{ID: c.ID, DisplayName: c.DisplayName, Phones: []phoneDoc{}}
	for _, p := range c.Phones {
		d.Phones = append(d.Phones, phoneDoc{Label: p.Label, Raw: p.Raw})
	}
	return d
}
