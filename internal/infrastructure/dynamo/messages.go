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

// MessageRepo provides typed DynamoDB operations for the messages table.
// Messages are grouped by a symmetric conversation key (see
// domain.ConversationKey) indexed with created_at as the sort key, so a
// whole conversation reads as a single ordered query.
type MessageRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMessageRepo(client *dynamodb.Client, tableName string) *MessageRepo {
	return &MessageRepo{client: client, tableName: tableName}
}

func (r *MessageRepo) Put(ctx context.Context, m *domain.Message) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Conversation returns all messages for a conversation key, oldest first.
func (r *MessageRepo) Conversation(ctx context.Context, conversationID string) ([]domain.Message, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("conversation_id-created_at-index"),
		KeyConditionExpression: aws.String("conversation_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: conversationID},
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	var msgs []domain.Message
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// LastMessage returns the newest message of a conversation, or
// domain.ErrNotFound when the conversation is empty.
func (r *MessageRepo) LastMessage(ctx context.Context, conversationID string) (*domain.Message, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("conversation_id-created_at-index"),
		KeyConditionExpression: aws.String("conversation_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: conversationID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("conversation is empty: %w", domain.ErrNotFound)
	}
	var m domain.Message
	if err := attributevalue.UnmarshalMap(out.Items[0], &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// listUnreadFrom returns unread messages a receiver has from one sender.
func (r *MessageRepo) listUnreadFrom(ctx context.Context, receiverID, senderID string) ([]domain.Message, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String("receiver_id-index"),
		KeyConditionExpression:   aws.String("receiver_id = :rid"),
		FilterExpression:         aws.String("sender_id = :sid AND #r = :false"),
		ExpressionAttributeNames: map[string]string{"#r": fieldRead},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid":   &types.AttributeValueMemberS{Value: receiverID},
			":sid":   &types.AttributeValueMemberS{Value: senderID},
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	if err != nil {
		return nil, err
	}
	var msgs []domain.Message
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// CountUnreadFrom returns how many unread messages receiver has from sender.
func (r *MessageRepo) CountUnreadFrom(ctx context.Context, receiverID, senderID string) (int, error) {
	msgs, err := r.listUnreadFrom(ctx, receiverID, senderID)
	if err != nil {
		return 0, err
	}
	return len(msgs), nil
}

// MarkConversationRead flips all unread messages from sender to receiver
// and returns how many were updated.
func (r *MessageRepo) MarkConversationRead(ctx context.Context, receiverID, senderID string) (int, error) {
	msgs, err := r.listUnreadFrom(ctx, receiverID, senderID)
	if err != nil {
		return 0, err
	}
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{fieldRead: true})
	if err != nil {
		return 0, err
	}
	for i := range msgs {
		_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 aws.String(r.tableName),
			Key:                       strKey("message_id", msgs[i].MessageID),
			UpdateExpression:          aws.String(expr),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		})
		if err != nil {
			return i, err
		}
	}
	return len(msgs), nil
}

// CounterpartIDs returns the distinct set of users the given user has
// exchanged messages with, in no particular order.
func (r *MessageRepo) CounterpartIDs(ctx context.Context, userID string) ([]string, error) {
	seen := map[string]bool{}
	collect := func(index, keyAttr, otherAttr string) error {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(index),
			KeyConditionExpression: aws.String(keyAttr + " = :uid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":uid": &types.AttributeValueMemberS{Value: userID},
			},
		})
		if err != nil {
			return err
		}
		for _, item := range out.Items {
			if v, ok := item[otherAttr].(*types.AttributeValueMemberS); ok {
				seen[v.Value] = true
			}
		}
		return nil
	}
	if err := collect("sender_id-index", "sender_id", "receiver_id"); err != nil {
		return nil, err
	}
	if err := collect("receiver_id-index", "receiver_id", "sender_id"); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids, nil
}
