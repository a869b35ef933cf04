package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/repository"
)

const (
	indentsCollection   = "indents"
	vendorsCollection   = "vendors"
	enquiriesCollection = "enquiries"
	quotesCollection    = "quotes"
	ordersCollection    = "purchase_orders"
	auditCollection     = "audit_log"
	countersCollection  = "counters"
)

// MongoDBRepository implements repository.Store for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ repository.Store = (*MongoDBRepository)(nil)

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri).SetRegistry(newRegistry())
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	_, err = db.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "indent_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to index purchase orders: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		db:     db,
	}, nil
}

// Seed loads the dataset when the indents collection is empty.
func (r *MongoDBRepository) Seed(ctx context.Context, data repository.Dataset) error {
	count, err := r.db.Collection(indentsCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count indents: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := insertAll(ctx, r.db.Collection(indentsCollection), data.Indents); err != nil {
		return fmt.Errorf("failed to seed indents: %w", err)
	}
	if err := insertAll(ctx, r.db.Collection(vendorsCollection), data.Vendors); err != nil {
		return fmt.Errorf("failed to seed vendors: %w", err)
	}
	if err := insertAll(ctx, r.db.Collection(enquiriesCollection), data.Enquiries); err != nil {
		return fmt.Errorf("failed to seed enquiries: %w", err)
	}
	if err := insertAll(ctx, r.db.Collection(quotesCollection), data.Quotes); err != nil {
		return fmt.Errorf("failed to seed quotes: %w", err)
	}

	var indentSeq, enquirySeq int
	for _, indent := range data.Indents {
		indentSeq = maxSeq(indentSeq, indent.ID, "IND")
	}
	for _, enquiry := range data.Enquiries {
		enquirySeq = maxSeq(enquirySeq, enquiry.ID, "ENQ")
	}
	if err := r.raiseCounter(ctx, indentsCollection, indentSeq); err != nil {
		return err
	}
	return r.raiseCounter(ctx, enquiriesCollection, enquirySeq)
}

// CreateIndent inserts a new indent.
func (r *MongoDBRepository) CreateIndent(ctx context.Context, indent models.Indent) error {
	_, err := r.db.Collection(indentsCollection).InsertOne(ctx, indent)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("indent %s: %w", indent.ID, repository.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert indent: %w", err)
	}
	return nil
}

// GetIndent loads an indent by id.
func (r *MongoDBRepository) GetIndent(ctx context.Context, id string) (models.Indent, error) {
	var indent models.Indent
	err := r.db.Collection(indentsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&indent)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Indent{}, fmt.Errorf("indent %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return models.Indent{}, fmt.Errorf("failed to load indent %s: %w", id, err)
	}
	return indent, nil
}

// ListIndents pushes status and priority into the query and applies the
// remaining criteria in memory.
func (r *MongoDBRepository) ListIndents(ctx context.Context, filter models.IndentFilter) ([]models.Indent, error) {
	query := bson.M{}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}

	cursor, err := r.db.Collection(indentsCollection).Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query indents: %w", err)
	}

	var all []models.Indent
	if err := cursor.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("failed to decode indents: %w", err)
	}

	out := make([]models.Indent, 0, len(all))
	for _, indent := range all {
		if filter.Match(indent) {
			out = append(out, indent)
		}
	}
	models.SortIndents(out, filter.Sort)
	return out, nil
}

// UpdateIndent replaces the indent when status and version still match.
func (r *MongoDBRepository) UpdateIndent(ctx context.Context, indent models.Indent, expected models.Status) error {
	coll := r.db.Collection(indentsCollection)

	next := indent.Clone()
	next.Version = indent.Version + 1

	res, err := coll.ReplaceOne(ctx, bson.M{"_id": indent.ID, "status": expected, "version": indent.Version}, next)
	if err != nil {
		return fmt.Errorf("failed to update indent %s: %w", indent.ID, err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	count, err := coll.CountDocuments(ctx, bson.M{"_id": indent.ID})
	if err != nil {
		return fmt.Errorf("failed to check indent %s: %w", indent.ID, err)
	}
	if count == 0 {
		return fmt.Errorf("indent %s: %w", indent.ID, repository.ErrNotFound)
	}
	return fmt.Errorf("indent %s: %w", indent.ID, repository.ErrConflict)
}

// NextIndentID allocates the next sequential indent id.
func (r *MongoDBRepository) NextIndentID(ctx context.Context) (string, error) {
	seq, err := r.nextSeq(ctx, indentsCollection)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("IND%03d", seq), nil
}

// GetVendor loads a vendor by id.
func (r *MongoDBRepository) GetVendor(ctx context.Context, id string) (models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Collection(vendorsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&vendor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Vendor{}, fmt.Errorf("vendor %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return models.Vendor{}, fmt.Errorf("failed to load vendor %s: %w", id, err)
	}
	return vendor, nil
}

// ListVendors returns vendors matching the filter.
func (r *MongoDBRepository) ListVendors(ctx context.Context, filter models.VendorFilter) ([]models.Vendor, error) {
	cursor, err := r.db.Collection(vendorsCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}

	var all []models.Vendor
	if err := cursor.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("failed to decode vendors: %w", err)
	}

	out := make([]models.Vendor, 0, len(all))
	for _, vendor := range all {
		if filter.Match(vendor) {
			out = append(out, vendor)
		}
	}
	return out, nil
}

// CreateEnquiry inserts a new enquiry.
func (r *MongoDBRepository) CreateEnquiry(ctx context.Context, enquiry models.Enquiry) error {
	_, err := r.db.Collection(enquiriesCollection).InsertOne(ctx, enquiry)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("enquiry %s: %w", enquiry.ID, repository.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert enquiry: %w", err)
	}
	return nil
}

// GetEnquiry loads an enquiry by id.
func (r *MongoDBRepository) GetEnquiry(ctx context.Context, id string) (models.Enquiry, error) {
	var enquiry models.Enquiry
	err := r.db.Collection(enquiriesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&enquiry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Enquiry{}, fmt.Errorf("enquiry %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return models.Enquiry{}, fmt.Errorf("failed to load enquiry %s: %w", id, err)
	}
	return enquiry, nil
}

// ListEnquiries returns enquiries matching the filter, newest first.
func (r *MongoDBRepository) ListEnquiries(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.IndentID != "" {
		query["indent_id"] = filter.IndentID
	}
	if filter.VendorID != "" {
		query["vendor_ids"] = filter.VendorID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.db.Collection(enquiriesCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query enquiries: %w", err)
	}

	out := []models.Enquiry{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode enquiries: %w", err)
	}
	return out, nil
}

// UpdateEnquiryStatus moves an enquiry between statuses.
func (r *MongoDBRepository) UpdateEnquiryStatus(ctx context.Context, id string, from, to models.EnquiryStatus) error {
	coll := r.db.Collection(enquiriesCollection)
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id, "status": from}, bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return fmt.Errorf("failed to update enquiry %s: %w", id, err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	count, err := coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to check enquiry %s: %w", id, err)
	}
	if count == 0 {
		return fmt.Errorf("enquiry %s: %w", id, repository.ErrNotFound)
	}
	return fmt.Errorf("enquiry %s: %w", id, repository.ErrConflict)
}

// ExpireEnquiries marks overdue pending enquiries as expired.
func (r *MongoDBRepository) ExpireEnquiries(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.Collection(enquiriesCollection).UpdateMany(ctx,
		bson.M{"status": models.EnquiryPending, "deadline": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"status": models.EnquiryExpired}})
	if err != nil {
		return 0, fmt.Errorf("failed to expire enquiries: %w", err)
	}
	return int(res.ModifiedCount), nil
}

// NextEnquiryID allocates the next sequential enquiry id.
func (r *MongoDBRepository) NextEnquiryID(ctx context.Context) (string, error) {
	seq, err := r.nextSeq(ctx, enquiriesCollection)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ENQ%03d", seq), nil
}

// SaveQuote upserts a quote.
func (r *MongoDBRepository) SaveQuote(ctx context.Context, quote models.Quote) error {
	_, err := r.db.Collection(quotesCollection).ReplaceOne(ctx, bson.M{"_id": quote.ID}, quote, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save quote: %w", err)
	}
	return nil
}

// ListQuotes returns the quotes for an enquiry, cheapest first.
func (r *MongoDBRepository) ListQuotes(ctx context.Context, enquiryID string) ([]models.Quote, error) {
	return r.findQuotes(ctx, bson.M{"enquiry_id": enquiryID})
}

// ListQuotesByIndent returns every quote for an indent, cheapest first.
func (r *MongoDBRepository) ListQuotesByIndent(ctx context.Context, indentID string) ([]models.Quote, error) {
	return r.findQuotes(ctx, bson.M{"indent_id": indentID})
}

func (r *MongoDBRepository) findQuotes(ctx context.Context, query bson.M) ([]models.Quote, error) {
	cursor, err := r.db.Collection(quotesCollection).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}

	var out []models.Quote
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}
	sortQuotes(out)
	return out, nil
}

// SavePurchaseOrder inserts an issued purchase order.
func (r *MongoDBRepository) SavePurchaseOrder(ctx context.Context, po models.PurchaseOrder) error {
	_, err := r.db.Collection(ordersCollection).InsertOne(ctx, po)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("purchase order %s: %w", po.PONumber, repository.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert purchase order: %w", err)
	}
	return nil
}

// FindPurchaseOrderByIndent returns the order issued against the indent.
func (r *MongoDBRepository) FindPurchaseOrderByIndent(ctx context.Context, indentID string) (models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := r.db.Collection(ordersCollection).FindOne(ctx, bson.M{"indent_id": indentID}).Decode(&po)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.PurchaseOrder{}, fmt.Errorf("purchase order for indent %s: %w", indentID, repository.ErrNotFound)
	}
	if err != nil {
		return models.PurchaseOrder{}, fmt.Errorf("failed to load purchase order for indent %s: %w", indentID, err)
	}
	return po, nil
}

// ListPurchaseOrders returns orders issued within [start, end].
func (r *MongoDBRepository) ListPurchaseOrders(ctx context.Context, start, end time.Time) ([]models.PurchaseOrder, error) {
	cursor, err := r.db.Collection(ordersCollection).Find(ctx,
		bson.M{"issued_at": bson.M{"$gte": start, "$lte": end}},
		options.Find().SetSort(bson.D{{Key: "issued_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase orders: %w", err)
	}

	var out []models.PurchaseOrder
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode purchase orders: %w", err)
	}
	return out, nil
}

// AppendAudit inserts one audit entry. Entries are never updated.
func (r *MongoDBRepository) AppendAudit(ctx context.Context, entry models.AuditEntry) error {
	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// ListAudit returns the audit trail for an indent, oldest first.
func (r *MongoDBRepository) ListAudit(ctx context.Context, indentID string) ([]models.AuditEntry, error) {
	cursor, err := r.db.Collection(auditCollection).Find(ctx,
		bson.M{"indent_id": indentID},
		options.Find().SetSort(bson.D{{Key: "performed_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}

	var out []models.AuditEntry
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode audit log: %w", err)
	}
	return out, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int    `bson:"seq"`
}

func (r *MongoDBRepository) nextSeq(ctx context.Context, name string) (int, error) {
	var c counter
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.db.Collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": 1}}, opts).
		Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", name, err)
	}
	return c.Seq, nil
}

func (r *MongoDBRepository) raiseCounter(ctx context.Context, name string, seq int) error {
	_, err := r.db.Collection(countersCollection).UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": seq}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to raise %s counter: %w", name, err)
	}
	return nil
}

func insertAll[T any](ctx context.Context, coll *mongo.Collection, items []T) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		docs = append(docs, item)
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}

func maxSeq(current int, id, prefix string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil || n <= current {
		return current
	}
	return n
}
