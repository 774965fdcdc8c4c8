package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

type couponRecord struct {
	Code            string `dynamodbav:"code"`
	Name            string `dynamodbav:"name,omitempty"`
	DiscountPercent int    `dynamodbav:"discount_percent"`
	Active          bool   `dynamodbav:"active"`
	ExpiresOn       string `dynamodbav:"expires_on"`
}

type CouponRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewCouponRepository(client *dynamodb.Client, tableName string) *CouponRepository {
	return &CouponRepository{
		client:    client,
		tableName: tableName,
	}
}

// FindCouponByCode matches the code exactly; callers normalize case.
func (r *CouponRepository) FindCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrCouponNotFound
	}

	var rec couponRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal coupon: %w", err)
	}
	return &domain.Coupon{
		Code:            rec.Code,
		Name:            rec.Name,
		DiscountPercent: rec.DiscountPercent,
		Active:          rec.Active,
		ExpiresOn:       rec.ExpiresOn,
	}, nil
}
