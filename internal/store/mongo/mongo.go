package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dreamshare/dreams-backend/internal/model"
	"github.com/dreamshare/dreams-backend/internal/store"
)

const (
	usersCollection  = "users"
	dreamsCollection = "dreams"

	connectTimeout = 10 * time.Second
)

// Open connects to MongoDB and verifies connectivity with a ping.
func Open(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo URI is empty")
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// New constructs a Mongo-backed store over the given database.
func New(client *mongo.Client, database string) store.Store {
	return &mongoStore{client: client, db: client.Database(database)}
}

// EnsureIndexes creates the indexes the store relies on. The unique index on
// users.email backs the duplicate-signup check.
func EnsureIndexes(ctx context.Context, client *mongo.Client, database string) error {
	users := client.Database(database).Collection(usersCollection)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func (s *mongoStore) Users() store.Users   { return &users{db: s.db} }
func (s *mongoStore) Dreams() store.Dreams { return &dreams{client: s.client, db: s.db} }

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// --- Documents ---

type userDoc struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty"`
	Name     string               `bson:"name"`
	Email    string               `bson:"email"`
	Password string               `bson:"password"`
	Image    string               `bson:"image"`
	Dreams   []primitive.ObjectID `bson:"dreams"`
}

type dreamDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Image       string             `bson:"image"`
	Creator     primitive.ObjectID `bson:"creator"`
}

func (d *userDoc) toModel() *model.User {
	ids := make([]string, 0, len(d.Dreams))
	for _, id := range d.Dreams {
		ids = append(ids, id.Hex())
	}
	return &model.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Image:        d.Image,
		Dreams:       ids,
	}
}

func (d *dreamDoc) toModel() *model.Dream {
	return &model.Dream{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Image:       d.Image,
		Creator:     d.Creator.Hex(),
	}
}

// parseID maps malformed hex ids to ErrNotFound: an id that cannot be an
// ObjectID cannot reference an existing document.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q: %w", id, model.ErrNotFound)
	}
	return oid, nil
}

// --- Users ---

type users struct{ db *mongo.Database }

func (u *users) col() *mongo.Collection { return u.db.Collection(usersCollection) }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	doc := userDoc{
		Name:     m.Name,
		Email:    m.Email,
		Password: m.PasswordHash,
		Image:    m.Image,
		Dreams:   []primitive.ObjectID{},
	}
	res, err := u.col().InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("email %s already registered: %w", m.Email, model.ErrConflict)
		}
		return nil, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toModel(), nil
}

func (u *users) GetByID(ctx context.Context, userID string) (*model.User, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	var doc userDoc
	if err := u.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", userID, model.ErrNotFound)
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc userDoc
	if err := u.col().FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("email %s: %w", email, model.ErrNotFound)
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (u *users) List(ctx context.Context) ([]*model.User, error) {
	cur, err := u.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	var res []*model.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		res = append(res, doc.toModel())
	}
	return res, cur.Err()
}

// --- Dreams ---

type dreams struct {
	client *mongo.Client
	db     *mongo.Database
}

func (d *dreams) col() *mongo.Collection     { return d.db.Collection(dreamsCollection) }
func (d *dreams) userCol() *mongo.Collection { return d.db.Collection(usersCollection) }

// Create inserts the dream and appends its id to the owner's dreams list in
// one transaction. Requires the deployment to be a replica set.
func (d *dreams) Create(ctx context.Context, m *model.Dream) (*model.Dream, error) {
	ownerID, err := parseID(m.Creator)
	if err != nil {
		return nil, err
	}
	doc := dreamDoc{
		ID:          primitive.NewObjectID(),
		Title:       m.Title,
		Description: m.Description,
		Image:       m.Image,
		Creator:     ownerID,
	}

	session, err := d.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := d.userCol().FindOne(sc, bson.M{"_id": ownerID}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("owner %s: %w", m.Creator, model.ErrNotFound)
			}
			return nil, err
		}
		if _, err := d.col().InsertOne(sc, doc); err != nil {
			return nil, err
		}
		res, err := d.userCol().UpdateOne(sc,
			bson.M{"_id": ownerID},
			bson.M{"$push": bson.M{"dreams": doc.ID}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, fmt.Errorf("owner %s: %w", m.Creator, model.ErrNotFound)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (d *dreams) GetByID(ctx context.Context, dreamID string) (*model.Dream, error) {
	oid, err := parseID(dreamID)
	if err != nil {
		return nil, err
	}
	var doc dreamDoc
	if err := d.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("dream %s: %w", dreamID, model.ErrNotFound)
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (d *dreams) ListByOwner(ctx context.Context, ownerID string) ([]*model.Dream, error) {
	oid, err := parseID(ownerID)
	if err != nil {
		return nil, err
	}
	var owner userDoc
	if err := d.userCol().FindOne(ctx, bson.M{"_id": oid}).Decode(&owner); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("owner %s: %w", ownerID, model.ErrNotFound)
		}
		return nil, err
	}
	if len(owner.Dreams) == 0 {
		return []*model.Dream{}, nil
	}

	cur, err := d.col().Find(ctx, bson.M{"_id": bson.M{"$in": owner.Dreams}})
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	byID := make(map[primitive.ObjectID]*model.Dream, len(owner.Dreams))
	for cur.Next(ctx) {
		var doc dreamDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		byID[doc.ID] = doc.toModel()
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	// Preserve the owner's list order, not the collection's.
	res := make([]*model.Dream, 0, len(owner.Dreams))
	for _, id := range owner.Dreams {
		if dm, ok := byID[id]; ok {
			res = append(res, dm)
		}
	}
	return res, nil
}

func (d *dreams) Update(ctx context.Context, m *model.Dream) (*model.Dream, error) {
	oid, err := parseID(m.ID)
	if err != nil {
		return nil, err
	}
	var doc dreamDoc
	err = d.col().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"title": m.Title, "description": m.Description}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("dream %s: %w", m.ID, model.ErrNotFound)
		}
		return nil, err
	}
	return doc.toModel(), nil
}

// Delete removes the dream and pulls its id from the owner's dreams list in
// one transaction.
func (d *dreams) Delete(ctx context.Context, dreamID, ownerID string) error {
	oid, err := parseID(dreamID)
	if err != nil {
		return err
	}
	owner, err := parseID(ownerID)
	if err != nil {
		return err
	}

	session, err := d.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := d.col().DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, fmt.Errorf("dream %s: %w", dreamID, model.ErrNotFound)
		}
		if _, err := d.userCol().UpdateOne(sc,
			bson.M{"_id": owner},
			bson.M{"$pull": bson.M{"dreams": oid}},
		); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}
