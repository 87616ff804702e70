package repository

import (
	"context"

	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type projectItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	OwnerID   string `dynamodbav:"owner_id"`
	Status    string `dynamodbav:"status"`
	Progress  int    `dynamodbav:"progress"`
	CreatedAt string `dynamodbav:"created_at"`
}

// ProjectDynamoRepository reads and creates project rows. Other project
// mutations belong to the project management service.
type ProjectDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb DynamoAPI, tableName string) *ProjectDynamoRepository {
	return &ProjectDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ProjectDynamoRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	av, err := attributevalue.MarshalMap(projectItem{
		ID:        p.ID,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		Status:    string(p.Status),
		Progress:  p.Progress,
		CreatedAt: formatTime(p.CreatedAt),
	})
	if err != nil {
		return entities.Project{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Project{}, err
	}
	if len(out.Item) == 0 {
		return entities.Project{}, nil
	}

	var it projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Project{}, err
	}
	return entities.Project{
		ID:        it.ID,
		Name:      it.Name,
		OwnerID:   it.OwnerID,
		Status:    entities.ProjectStatus(it.Status),
		Progress:  it.Progress,
		CreatedAt: parseTime(it.CreatedAt),
	}, nil
}
