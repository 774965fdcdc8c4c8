package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

type productRecord struct {
	ID          string   `dynamodbav:"id"`
	Name        string   `dynamodbav:"name"`
	Price       float64  `dynamodbav:"price"`
	Category    string   `dynamodbav:"category"`
	Ingredients string   `dynamodbav:"ingredients,omitempty"`
	ImageURL    string   `dynamodbav:"image_url,omitempty"`
	Removable   []string `dynamodbav:"removable,omitempty"`
}

type optionRecord struct {
	ID              string  `dynamodbav:"id"`
	Name            string  `dynamodbav:"name"`
	Price           float64 `dynamodbav:"price"`
	AppliesToPizza  bool    `dynamodbav:"applies_to_pizza"`
	AppliesToEsfiha bool    `dynamodbav:"applies_to_esfiha"`
	AppliesToAll    bool    `dynamodbav:"applies_to_all"`
}

type offerRecord struct {
	ID          string    `dynamodbav:"id"`
	Name        string    `dynamodbav:"name"`
	Description string    `dynamodbav:"description,omitempty"`
	ImageURL    string    `dynamodbav:"image_url,omitempty"`
	ProductIDs  []string  `dynamodbav:"product_ids"`
	Price       float64   `dynamodbav:"price"`
	Active      bool      `dynamodbav:"active"`
	ExpiresAt   time.Time `dynamodbav:"expires_at"`
}

// CatalogRepository reads products, customization options and offers.
type CatalogRepository struct {
	client       *dynamodb.Client
	productTable string
	optionTable  string
	offerTable   string
}

func NewCatalogRepository(client *dynamodb.Client, productTable, optionTable, offerTable string) *CatalogRepository {
	return &CatalogRepository{
		client:       client,
		productTable: productTable,
		optionTable:  optionTable,
		offerTable:   offerTable,
	}
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var records []productRecord
	if err := r.scan(ctx, r.productTable, &records); err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}

	products := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		p := domain.Product{
			ID:          rec.ID,
			Name:        rec.Name,
			Price:       money(rec.Price),
			Category:    domain.Category(rec.Category),
			Ingredients: rec.Ingredients,
			ImageURL:    rec.ImageURL,
		}
		if len(rec.Removable) > 0 {
			p.Customization = &domain.CustomizationSpec{Removable: rec.Removable}
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *CatalogRepository) ListOptions(ctx context.Context) ([]domain.Option, error) {
	var records []optionRecord
	if err := r.scan(ctx, r.optionTable, &records); err != nil {
		return nil, fmt.Errorf("failed to scan options: %w", err)
	}

	options := make([]domain.Option, 0, len(records))
	for _, rec := range records {
		options = append(options, domain.Option{
			ID:              rec.ID,
			Name:            rec.Name,
			Price:           money(rec.Price),
			AppliesToPizza:  rec.AppliesToPizza,
			AppliesToEsfiha: rec.AppliesToEsfiha,
			AppliesToAll:    rec.AppliesToAll,
		})
	}
	return options, nil
}

func (r *CatalogRepository) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	var records []offerRecord
	if err := r.scan(ctx, r.offerTable, &records); err != nil {
		return nil, fmt.Errorf("failed to scan offers: %w", err)
	}

	offers := make([]domain.Offer, 0, len(records))
	for _, rec := range records {
		offers = append(offers, domain.Offer{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			ImageURL:    rec.ImageURL,
			ProductIDs:  rec.ProductIDs,
			Price:       money(rec.Price),
			Active:      rec.Active,
			ExpiresAt:   rec.ExpiresAt,
		})
	}
	return offers, nil
}

// The catalog tables are small, so a full scan per refresh is fine.
func (r *CatalogRepository) scan(ctx context.Context, table string, out any) error {
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})

	var items []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		items = append(items, page.Items...)
	}
	return attributevalue.UnmarshalListOfMaps(items, out)
}
