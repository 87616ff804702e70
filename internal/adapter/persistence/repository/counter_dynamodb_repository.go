package repository

import (
	"context"
	"fmt"
	"strconv"

	"agency_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const quoteNumberCounter = "quote_number"

// CounterDynamoSequence hands out quote numbers from a single counter row.
//
// Table requirements:
//   - PK: name (string)
//
// ADD on a missing attribute starts from zero, so the first number is 1.
type CounterDynamoSequence struct {
	ddb       DynamoAPI
	tableName string
	name      string
}

var _ interfaces.IQuoteNumberSequence = (*CounterDynamoSequence)(nil)

func NewQuoteNumberSequence(ddb DynamoAPI, tableName string) *CounterDynamoSequence {
	return &CounterDynamoSequence{ddb: ddb, tableName: tableName, name: quoteNumberCounter}
}

func (s *CounterDynamoSequence) Next(ctx context.Context) (int64, error) {
	out, err := s.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.tableName),
		Key:              stringKey("name", s.name),
		UpdateExpression: aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{
			"#value": "value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s returned no value", s.name)
	}
	return strconv.ParseInt(n.Value, 10, 64)
}
