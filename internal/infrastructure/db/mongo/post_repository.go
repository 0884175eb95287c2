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

	"github.com/sociogram/social-api/internal/core/domain"
)

const postsCollection = "posts"

// PostRepository implements ports.PostRepository on the posts collection.
// Comments are embedded subdocuments; likes are a string-set of user IDs.
type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id"`
	UserID    string             `bson:"user_id"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"created_at"`
}

type mongoPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Text      string             `bson:"text,omitempty"`
	ImageURL  string             `bson:"image_url,omitempty"`
	Likes     []string           `bson:"likes"`
	Comments  []mongoComment     `bson:"comments"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := &mongoPost{
		ID:        primitive.NewObjectID(),
		UserID:    post.UserID,
		Text:      post.Text,
		ImageURL:  post.ImageURL,
		Likes:     emptyIfNil(post.Likes),
		Comments:  []mongoComment{},
		CreatedAt: post.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return toDomainPost(doc), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return toDomainPost(&mp), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// AddComment appends the comment to the post's ordered sequence and returns
// the updated post.
func (r *PostRepository) AddComment(ctx context.Context, postID string, comment domain.Comment) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoComment{
		ID:        primitive.NewObjectID(),
		UserID:    comment.UserID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}

	var mp mongoPost
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"comments": doc}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return toDomainPost(&mp), nil
}

// AddLike inserts userID into the post's like set. Only this document is
// touched; the liker's mirror set is a separate write.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) error {
	return r.updateLikeSet(ctx, postID, userID, "$addToSet")
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	return r.updateLikeSet(ctx, postID, userID, "$pull")
}

func (r *PostRepository) updateLikeSet(ctx context.Context, postID, userID, op string) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{op: bson.M{"likes": userID}})
	if err != nil {
		return fmt.Errorf("update likes: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) ListAll(ctx context.Context) ([]*domain.Post, error) {
	return r.list(ctx, bson.M{})
}

func (r *PostRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Post, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *PostRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]*domain.Post, error) {
	if len(userIDs) == 0 {
		return []*domain.Post{}, nil
	}
	return r.list(ctx, bson.M{"user_id": bson.M{"$in": userIDs}})
}

func (r *PostRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Post, error) {
	oids := toObjectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Post{}, nil
	}
	return r.list(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

// list runs the filter sorted by creation time descending.
func (r *PostRepository) list(ctx context.Context, filter bson.M) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []*domain.Post{}
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, toDomainPost(&mp))
	}
	return posts, cur.Err()
}

// EnsureIndexes creates the indexes backing the feed queries.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDomainPost(mp *mongoPost) *domain.Post {
	comments := make([]domain.Comment, len(mp.Comments))
	for i, c := range mp.Comments {
		comments[i] = domain.Comment{
			ID:        c.ID.Hex(),
			UserID:    c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
	}
	return &domain.Post{
		ID:        mp.ID.Hex(),
		UserID:    mp.UserID,
		Text:      mp.Text,
		ImageURL:  mp.ImageURL,
		Likes:     emptyIfNil(mp.Likes),
		Comments:  comments,
		CreatedAt: mp.CreatedAt,
	}
}
