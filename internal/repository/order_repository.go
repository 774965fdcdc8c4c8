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

type orderItemRecord struct {
	LineID    string             `dynamodbav:"line_id"`
	ProductID string             `dynamodbav:"product_id"`
	Name      string             `dynamodbav:"name"`
	UnitPrice float64            `dynamodbav:"unit_price"`
	Quantity  int                `dynamodbav:"quantity"`
	ImageURL  string             `dynamodbav:"image_url,omitempty"`
	Removed   []string           `dynamodbav:"removed,omitempty"`
	Added     []orderAddedRecord `dynamodbav:"added,omitempty"`
	Note      string             `dynamodbav:"note,omitempty"`
}

type orderAddedRecord struct {
	Name  string  `dynamodbav:"name"`
	Price float64 `dynamodbav:"price"`
}

type orderRecord struct {
	OrderID       string            `dynamodbav:"order_id"`
	ClientID      string            `dynamodbav:"client_id"`
	Customer      domain.Customer   `dynamodbav:"customer"`
	Items         []orderItemRecord `dynamodbav:"items"`
	Address       domain.Address    `dynamodbav:"address"`
	Subtotal      float64           `dynamodbav:"subtotal"`
	Discount      float64           `dynamodbav:"discount"`
	ServiceFee    float64           `dynamodbav:"service_fee"`
	DeliveryFee   float64           `dynamodbav:"delivery_fee"`
	GrandTotal    float64           `dynamodbav:"grand_total"`
	OfferID       string            `dynamodbav:"offer_id,omitempty"`
	CouponCode    string            `dynamodbav:"coupon_code,omitempty"`
	PaymentMethod string            `dynamodbav:"payment_method"`
	PaymentID     string            `dynamodbav:"payment_id,omitempty"`
	CashTendered  float64           `dynamodbav:"cash_tendered,omitempty"`
	Change        float64           `dynamodbav:"change,omitempty"`
	Status        string            `dynamodbav:"status"`
	CreatedAt     time.Time         `dynamodbav:"created_at"`
	UpdatedAt     time.Time         `dynamodbav:"updated_at"`
}

type OrderRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewOrderRepository(client *dynamodb.Client, tableName string) *OrderRepository {
	return &OrderRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	av, err := attributevalue.MarshalMap(toOrderRecord(order))
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	av["PK"] = &types.AttributeValueMemberS{Value: fmt.Sprintf("ORDER#%s", order.OrderID)}
	av["SK"] = &types.AttributeValueMemberS{Value: "METADATA"}
	av["GSI1PK"] = &types.AttributeValueMemberS{Value: fmt.Sprintf("CLIENT#%s", order.ClientID)}
	av["GSI1SK"] = &types.AttributeValueMemberS{Value: fmt.Sprintf("ORDER#%s", order.CreatedAt.UTC().Format(time.RFC3339))}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("ORDER#%s", id)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, ErrOrderNotFound
	}

	var rec orderRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	return fromOrderRecord(rec), nil
}

func toOrderRecord(o *domain.Order) orderRecord {
	rec := orderRecord{
		OrderID:       o.OrderID,
		ClientID:      o.ClientID,
		Customer:      o.Customer,
		Items:         make([]orderItemRecord, 0, len(o.Items)),
		Address:       o.Address,
		Subtotal:      number(o.Totals.Subtotal),
		Discount:      number(o.Totals.Discount),
		ServiceFee:    number(o.Totals.ServiceFee),
		DeliveryFee:   number(o.Totals.DeliveryFee),
		GrandTotal:    number(o.Totals.GrandTotal),
		OfferID:       o.OfferID,
		CouponCode:    o.CouponCode,
		PaymentMethod: string(o.PaymentMethod),
		PaymentID:     o.PaymentID,
		CashTendered:  number(o.CashTendered),
		Change:        number(o.Change),
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, l := range o.Items {
		item := orderItemRecord{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: number(l.UnitPrice),
			Quantity:  l.Quantity,
			ImageURL:  l.ImageURL,
		}
		if c := l.Customization; c != nil {
			item.Removed = c.Removed
			item.Note = c.Note
			for _, a := range c.Added {
				item.Added = append(item.Added, orderAddedRecord{Name: a.Name, Price: number(a.Price)})
			}
		}
		rec.Items = append(rec.Items, item)
	}
	return rec
}

func fromOrderRecord(rec orderRecord) *domain.Order {
	o := &domain.Order{
		OrderID:  rec.OrderID,
		ClientID: rec.ClientID,
		Customer: rec.Customer,
		Items:    make([]domain.CartLine, 0, len(rec.Items)),
		Address:  rec.Address,
		Totals: domain.OrderTotals{
			Subtotal:    money(rec.Subtotal),
			Discount:    money(rec.Discount),
			ServiceFee:  money(rec.ServiceFee),
			DeliveryFee: money(rec.DeliveryFee),
			GrandTotal:  money(rec.GrandTotal),
		},
		OfferID:       rec.OfferID,
		CouponCode:    rec.CouponCode,
		PaymentMethod: domain.PaymentMethod(rec.PaymentMethod),
		PaymentID:     rec.PaymentID,
		CashTendered:  money(rec.CashTendered),
		Change:        money(rec.Change),
		Status:        domain.OrderStatus(rec.Status),
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
	for _, item := range rec.Items {
		line := domain.CartLine{
			LineID:    item.LineID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: money(item.UnitPrice),
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		}
		if len(item.Removed) > 0 || len(item.Added) > 0 || item.Note != "" {
			c := &domain.Customization{Removed: item.Removed, Note: item.Note}
			for _, a := range item.Added {
				c.Added = append(c.Added, domain.AddedOption{Name: a.Name, Price: money(a.Price)})
			}
			line.Customization = c
		}
		o.Items = append(o.Items, line)
	}
	return o
}
