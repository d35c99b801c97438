package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/jobboard-api/internal/domain"
)

// SavedJobRepo provides typed DynamoDB operations for the saved_jobs table.
// The composite key (user_id, job_id) makes one save per user per job a
// storage-level guarantee.
type SavedJobRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSavedJobRepo(client *dynamodb.Client, tableName string) *SavedJobRepo {
	return &SavedJobRepo{client: client, tableName: tableName}
}

// Create inserts the saved job and returns domain.ErrConflict when the user
// already saved this job.
func (r *SavedJobRepo) Create(ctx context.Context, s *domain.SavedJob) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal saved job: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(user_id) AND attribute_not_exists(job_id)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("job already saved: %w", domain.ErrConflict)
	}
	return err
}

// Delete removes the saved job and returns domain.ErrNotFound when the user
// never saved it.
func (r *SavedJobRepo) Delete(ctx context.Context, userID, jobID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 compositeKey("user_id", userID, "job_id", jobID),
		ConditionExpression: aws.String("attribute_exists(user_id)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("saved job not found: %w", domain.ErrNotFound)
	}
	return err
}

func (r *SavedJobRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	var saved []domain.SavedJob
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}
