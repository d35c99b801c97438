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

// JobRepo provides typed DynamoDB operations for the jobs table.
type JobRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewJobRepo(client *dynamodb.Client, tableName string) *JobRepo {
	return &JobRepo{client: client, tableName: tableName}
}

func (r *JobRepo) Put(ctx context.Context, j *domain.Job) error {
	item, err := attributevalue.MarshalMap(j)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *JobRepo) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("job_id", jobID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("job not found: %w", domain.ErrNotFound)
	}
	var j domain.Job
	if err := attributevalue.UnmarshalMap(out.Item, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// ScanActivePage returns a page of active jobs.
// cursor is a base64-encoded job_id used as ExclusiveStartKey.
// Returns the items, a next cursor (empty string when no more pages), and any error.
func (r *JobRepo) ScanActivePage(ctx context.Context, limit int32, cursor string) ([]domain.Job, string, error) {
	input := &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		FilterExpression:         aws.String("#s = :active"),
		ExpressionAttributeNames: map[string]string{"#s": fieldJobStatus},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberS{Value: domain.JobStatusActive},
		},
		Limit: aws.Int32(limit),
	}
	if cursor != "" {
		jobID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		input.ExclusiveStartKey = strKey("job_id", jobID)
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, "", err
	}
	var jobs []domain.Job
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &jobs); err != nil {
		return nil, "", err
	}
	nextCursor := ""
	if v, ok := out.LastEvaluatedKey["job_id"].(*types.AttributeValueMemberS); ok {
		nextCursor = encodeCursor(v.Value)
	}
	return jobs, nextCursor, nil
}

// ListByUser returns all jobs posted by an employer via the user_id-index GSI.
func (r *JobRepo) ListByUser(ctx context.Context, userID string) ([]domain.Job, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	var jobs []domain.Job
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepo) Update(ctx context.Context, jobID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("job_id", jobID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

// IncrementViews bumps the view counter without a read-modify-write cycle.
func (r *JobRepo) IncrementViews(ctx context.Context, jobID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      strKey("job_id", jobID),
		UpdateExpression:         aws.String("ADD #v :one"),
		ExpressionAttributeNames: map[string]string{"#v": "view_count"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})
	return err
}

func (r *JobRepo) Delete(ctx context.Context, jobID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("job_id", jobID),
	})
	return err
}
