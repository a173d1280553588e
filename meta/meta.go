package meta

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/asciitab/tabulator/constants"
	"github.com/asciitab/tabulator/model"
	"github.com/asciitab/tabulator/util"
)

// Lookup fetches song metadata from DynamoDB for "artist - title" keys.
// Metadata is an enrichment, never a requirement: an unconfigured table or a
// failed lookup yields an empty map, and at most 10 keys are queried.
func Lookup(keys []string) map[string]model.SongMetadata {
	res := make(map[string]model.SongMetadata)

	table := constants.GetMetaTable()
	if table == "" || len(keys) == 0 {
		return res
	}
	keys = keys[:util.Min(len(keys), 10)]

	var dbKeys []map[string]*dynamodb.AttributeValue
	for _, k := range keys {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(k),
		}
		dbKeys = append(dbKeys, key)
	}

	cfg := &aws.Config{}
	if endpoint := constants.GetMetaEndpoint(); endpoint != "" {
		cfg.Region = aws.String("localhost")
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		fmt.Printf("Skipping metadata lookup because: %v\n", err)
		return res
	}

	client := dynamodb.New(sess)
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			table: {Keys: dbKeys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		fmt.Printf("Skipping metadata lookup because: %v\n", err)
		return res
	}

	for _, v := range dbres.Responses[table] {
		var s model.SongMetadata
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			s.Year = uint(year)
		}
		if v["Artist"] != nil && v["Artist"].S != nil {
			s.Artist = *v["Artist"].S
		}
		if v["Release"] != nil && v["Release"].S != nil {
			s.Release = *v["Release"].S
		}
		if v["Title"] != nil && v["Title"].S != nil {
			s.Title = *v["Title"].S
		}
		if v["PK"] != nil && v["PK"].S != nil {
			res[*v["PK"].S] = s
		}
	}

	return res
}
