package store

import (
	"context"
	"fmt"

	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore is the record-store adapter over the two logical tables.
// Todos are keyed (userId, todoId), profiles by userId alone. It does not
// retry and does not classify failures; callers decide what a failed call
// means.
type DynamoStore struct {
	db            *dynamodb.Client
	todosTable    string
	profilesTable string
}

func NewDynamoStore(db *dynamodb.Client, todosTable, profilesTable string) *DynamoStore {
	return &DynamoStore{
		db:            db,
		todosTable:    todosTable,
		profilesTable: profilesTable,
	}
}

// ListTodos returns every todo owned by userId, in whatever order the
// store hands them back. An empty slice means the user has none.
func (s *DynamoStore) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	out, err := s.db.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.todosTable),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}

	todos := []models.Todo{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &todos); err != nil {
		return nil, fmt.Errorf("unmarshal todos: %w", err)
	}
	return todos, nil
}

func (s *DynamoStore) PutTodo(ctx context.Context, t models.Todo) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal todo: %w", err)
	}

	_, err = s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.todosTable),
		Item:      item,
	})
	return err
}

// GetTodo is a point lookup on (userId, todoId); nil, nil when absent.
func (s *DynamoStore) GetTodo(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.todosTable),
		Key:       todoKey(userID, todoID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var t models.Todo
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, fmt.Errorf("unmarshal todo: %w", err)
	}
	return &t, nil
}

// UpdateTodo overwrites the mutable attributes of one todo. Updating a
// todo that does not exist is a store-level upsert of just these
// attributes; existence checks are the caller's business.
func (s *DynamoStore) UpdateTodo(ctx context.Context, userID, todoID string, upd models.TodoUpdate) error {
	_, err := s.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.todosTable),
		Key:              todoKey(userID, todoID),
		UpdateExpression: aws.String("SET #n = :name, dueDate = :dueDate, done = :done"),
		ExpressionAttributeNames: map[string]string{
			"#n": "name",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":    &types.AttributeValueMemberS{Value: upd.Name},
			":dueDate": &types.AttributeValueMemberS{Value: upd.DueDate},
			":done":    &types.AttributeValueMemberBOOL{Value: upd.Done},
		},
	})
	return err
}

func (s *DynamoStore) DeleteTodo(ctx context.Context, userID, todoID string) error {
	_, err := s.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.todosTable),
		Key:       todoKey(userID, todoID),
	})
	return err
}

// GetProfile returns nil, nil when the user has no profile record.
func (s *DynamoStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.profilesTable),
		Key:       profileKey(userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var p models.Profile
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &p, nil
}

// PutProfile fully replaces the profile record.
func (s *DynamoStore) PutProfile(ctx context.Context, p models.Profile) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.profilesTable),
		Item:      item,
	})
	return err
}

func (s *DynamoStore) DeleteProfile(ctx context.Context, userID string) error {
	_, err := s.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.profilesTable),
		Key:       profileKey(userID),
	})
	return err
}

func todoKey(userID, todoID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
		"todoId": &types.AttributeValueMemberS{Value: todoID},
	}
}

func profileKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}
