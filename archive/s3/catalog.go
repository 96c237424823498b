package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/xdmfgo/archive"
)

// ErrConcurrentModification is returned when a racing commit claimed the
// next version first.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// DDBClient is the subset of the DynamoDB API the catalog uses. It is
// satisfied by *dynamodb.Client.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Catalog records which bundle is the current version of a result series.
// It is backed by a DynamoDB table whose partition key is "series"
// (string) and whose sort key is "version" (number).
type Catalog struct {
	client DDBClient
	table  string
}

var _ archive.Catalog = (*Catalog)(nil)

// NewCatalog creates a catalog backed by the given table.
func NewCatalog(client DDBClient, table string) *Catalog {
	return &Catalog{
		client: client,
		table:  table,
	}
}

// Latest returns the newest committed version of a series. It returns
// archive.ErrNotFound when the series has no versions yet.
func (c *Catalog) Latest(ctx context.Context, series string) (*archive.Version, error) {
	out, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		KeyConditionExpression: aws.String("series = :series"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":series": &types.AttributeValueMemberS{Value: series},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query latest version: %w", err)
	}

	if len(out.Items) == 0 {
		return nil, fmt.Errorf("series %q: %w", series, archive.ErrNotFound)
	}

	return parseVersion(series, out.Items[0])
}

// Commit records a new version of the series pointing at the given
// bundle. The version number is one above the latest committed version. A
// conditional put detects racing commits; the loser receives
// ErrConcurrentModification and may re-read and retry.
func (c *Catalog) Commit(ctx context.Context, series, bundle string) (*archive.Version, error) {
	var latest uint64

	v, err := c.Latest(ctx, series)
	if err != nil && !errors.Is(err, archive.ErrNotFound) {
		return nil, err
	}

	if v != nil {
		latest = v.Number
	}

	next := &archive.Version{
		Series: series,
		Number: latest + 1,
		Bundle: bundle,
	}

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item: map[string]types.AttributeValue{
			"series":  &types.AttributeValueMemberS{Value: next.Series},
			"version": &types.AttributeValueMemberN{Value: strconv.FormatUint(next.Number, 10)},
			"bundle":  &types.AttributeValueMemberS{Value: next.Bundle},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, ErrConcurrentModification
		}

		return nil, fmt.Errorf("commit version %d: %w", next.Number, err)
	}

	return next, nil
}

func parseVersion(series string, item map[string]types.AttributeValue) (*archive.Version, error) {
	n, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return nil, fmt.Errorf("series %q: missing version attribute", series)
	}

	number, err := strconv.ParseUint(n.Value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("series %q: invalid version attribute: %w", series, err)
	}

	v := &archive.Version{
		Series: series,
		Number: number,
	}

	if b, ok := item["bundle"].(*types.AttributeValueMemberS); ok {
		v.Bundle = b.Value
	}

	return v, nil
}
