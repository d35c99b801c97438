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

// ApplicationRepo provides typed DynamoDB operations for the applications
// table. The table is keyed HASH=job_id RANGE=user_id, which makes the
// one-application-per-(job,user) invariant a property of the storage layer
// rather than a read-then-write check in application code.
type ApplicationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewApplicationRepo(client *dynamodb.Client, tableName string) *ApplicationRepo {
	return &ApplicationRepo{client: client, tableName: tableName}
}

// Create inserts a new application. The conditional expression rejects the
// write when an item with the same (job, user) key already exists; that
// failure surfaces as domain.ErrConflict.
func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal application: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(job_id) AND attribute_not_exists(user_id)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("application already exists for this job and user: %w", domain.ErrConflict)
	}
	return err
}

func (r *ApplicationRepo) Get(ctx context.Context, jobID, userID string) (*domain.Application, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("job_id", jobID, "user_id", userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("application not found: %w", domain.ErrNotFound)
	}
	var a domain.Application
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID looks an application up by its public id via the
// application_id-index GSI.
func (r *ApplicationRepo) GetByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("application_id-index"),
		KeyConditionExpression: aws.String("application_id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: applicationID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("application not found: %w", domain.ErrNotFound)
	}
	var a domain.Application
	if err := attributevalue.UnmarshalMap(out.Items[0], &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByJob returns all applications submitted to a job.
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("job_id = :jid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":jid": &types.AttributeValueMemberS{Value: jobID},
		},
	})
	if err != nil {
		return nil, err
	}
	var apps []domain.Application
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByUser returns all applications a jobseeker has submitted, newest
// first, via the user_id-created_at-index GSI.
func (r *ApplicationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-created_at-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var apps []domain.Application
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepo) Update(ctx context.Context, jobID, userID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       compositeKey("job_id", jobID, "user_id", userID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}
