package docstore

import (
	"fmt"
	"regexp"

	"innkeep/shared/dto"
	"innkeep/shared/model"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const fieldDocumentID = "_id"

// BuildFilter translates a relational filter group into a query document.
// The primary column is stored as _id. Plain SQL fragments cannot be
// translated and are dropped with a warning.
func BuildFilter(group dto.FilterGroup, primaryColumn string) bson.M {
	parts := bson.A{}

	for _, item := range group.Filters {
		switch filter := item.(type) {
		case dto.Filter:
			if doc := buildCondition(filter, primaryColumn); doc != nil {
				parts = append(parts, doc)
			}
		case dto.FilterGroup:
			if doc := BuildFilter(filter, primaryColumn); len(doc) > 0 {
				parts = append(parts, doc)
			}
		}
	}

	switch len(parts) {
	case 0:
		return bson.M{}
	case 1:
		doc, _ := parts[0].(bson.M)

		return doc
	}

	if group.Operator == dto.FilterGroupOperatorOr {
		return bson.M{"$or": parts}
	}

	return bson.M{"$and": parts}
}

func buildCondition(filter dto.Filter, primaryColumn string) bson.M {
	field := documentField(filter.Field, primaryColumn)

	switch filter.Operator {
	case dto.FilterOperatorEq:
		return bson.M{field: filter.Value}
	case dto.FilterOperatorLike:
		pattern := regexp.QuoteMeta(fmt.Sprint(filter.Value))

		return bson.M{field: bson.Regex{Pattern: pattern, Options: "i"}}
	case dto.FilterOperatorIn:
		return bson.M{field: bson.M{"$in": filter.Value}}
	case dto.FilterOperatorNotEq:
		return bson.M{field: bson.M{"$ne": filter.Value}}
	case dto.FilterOperatorLessEq:
		return bson.M{field: bson.M{"$lte": filter.Value}}
	case dto.FilterOperatorGreaterEq:
		return bson.M{field: bson.M{"$gte": filter.Value}}
	case dto.FilterOperatorLess:
		return bson.M{field: bson.M{"$lt": filter.Value}}
	case dto.FilterOperatorGreater:
		return bson.M{field: bson.M{"$gt": filter.Value}}
	case dto.FilterIsNull:
		return bson.M{field: nil}
	case dto.FilterIsNotNull:
		return bson.M{field: bson.M{"$ne": nil}}
	default:
		log.Warn().Str("operator", filter.Operator).Str("field", filter.Field).Msg("filter operator not supported by document store, skipped")

		return nil
	}
}

// BuildUpdate splits an update map into $set and $unset sections.
func BuildUpdate(mod map[string]any, primaryColumn string) bson.M {
	set := bson.M{}
	unset := bson.M{}

	for key, value := range mod {
		field := documentField(key, primaryColumn)

		if model.IsUnset(value) || value == nil {
			unset[field] = ""

			continue
		}

		set[field] = value
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}

	if len(unset) > 0 {
		update["$unset"] = unset
	}

	return update
}

func documentField(field, primaryColumn string) string {
	if field == primaryColumn {
		return fieldDocumentID
	}

	return field
}
