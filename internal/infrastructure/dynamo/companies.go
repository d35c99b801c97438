package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/jobboard-api/internal/domain"
)

// CompanyRepo provides typed DynamoDB operations for the companies table.
type CompanyRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCompanyRepo(client *dynamodb.Client, tableName string) *CompanyRepo {
	return &CompanyRepo{client: client, tableName: tableName}
}

func (r *CompanyRepo) Put(ctx context.Context, c *domain.Company) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal company: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CompanyRepo) Get(ctx context.Context, companyID string) (*domain.Company, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("company_id", companyID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("company not found: %w", domain.ErrNotFound)
	}
	var c domain.Company
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByUser returns the employer's company via the user_id-index GSI.
func (r *CompanyRepo) GetByUser(ctx context.Context, userID string) (*domain.Company, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("company not found: %w", domain.ErrNotFound)
	}
	var c domain.Company
	if err := attributevalue.UnmarshalMap(out.Items[0], &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepo) Scan(ctx context.Context) ([]domain.Company, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var companies []domain.Company
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepo) Update(ctx context.Context, companyID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("company_id", companyID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}
