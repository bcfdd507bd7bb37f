package newsapi

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"fluxactu/internal/domain/entity"
)

// decodeArticles turns a response body into articles. Non-array JSON is an empty list.
//
// Elements are decoded one by one and never fail the list: non-object elements
// are dropped and mistyped fields degrade to their zero value.
func decodeArticles(body []byte) ([]entity.Article, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrDecode)
	}
	root := gjson.ParseBytes(body)
	articles := []entity.Article{}
	if !root.IsArray() {
		return articles, nil
	}

	root.ForEach(func(_, elem gjson.Result) bool {
		if elem.IsObject() {
			articles = append(articles, decodeArticle(elem))
		}
		return true
	})
	return articles, nil
}

func decodeArticle(obj gjson.Result) entity.Article {
	return entity.Article{
		ID:        entity.ID(scalarText(obj.Get("id"))),
		Title:     scalarText(obj.Get("title")),
		Summary:   scalarText(obj.Get("summary")),
		AISummary: scalarText(obj.Get("ai_summary")),
		Topic:     scalarText(obj.Get("topic")),
		Source:    scalarText(obj.Get("source")),
		Date:      dateText(obj.Get("date")),
		Tags:      tagList(obj.Get("tags")),
		URL:       scalarText(obj.Get("url")),
		Score:     score(obj.Get("score")),
	}
}

// scalarText returns strings as is and numbers or booleans as their JSON text.
// Null, missing, objects and arrays yield "".
func scalarText(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number, gjson.True, gjson.False:
		return r.Raw
	default:
		return ""
	}
}

// dateText keeps date strings and reads numbers as Unix milliseconds.
func dateText(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		ms := r.Float()
		if math.IsNaN(ms) || math.IsInf(ms, 0) {
			return ""
		}
		return time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// tagList accepts an array of scalars or a single scalar.
func tagList(r gjson.Result) []string {
	if r.IsArray() {
		var tags []string
		r.ForEach(func(_, tag gjson.Result) bool {
			if t := scalarText(tag); t != "" {
				tags = append(tags, t)
			}
			return true
		})
		return tags
	}
	if t := scalarText(r); t != "" {
		return []string{t}
	}
	return nil
}

// score accepts a number or a numeric string. Anything else is no score.
func score(r gjson.Result) *float64 {
	var v float64
	switch r.Type {
	case gjson.Number:
		v = r.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return nil
		}
		v = parsed
	default:
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
