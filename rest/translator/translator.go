// Package translator turns the query string of a list request into a filtered, ordered and paged query.
package translator

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/mitchellh/mapstructure"

	"github.com/datastax/entity-filter/filter"
	"github.com/datastax/entity-filter/query"
	e "github.com/datastax/entity-filter/rest/errors"
	m "github.com/datastax/entity-filter/rest/models"
	"github.com/datastax/entity-filter/types"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	_ = validate.RegisterTranslation("oneof", trans, func(ut ut.Translator) error {
		return ut.Add("ListQuery.Direction", "{0} must be one of asc, ascending, desc or descending", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("ListQuery.Direction", fe.Field())
		return t
	})
}

// ListTranslator translates list requests on entities of type T filtered through the model M
type ListTranslator[T, M any] struct {
	engine *filter.Engine
	schema *filter.Schema[M]
}

func NewListTranslator[T, M any](engine *filter.Engine, schema *filter.Schema[M]) *ListTranslator[T, M] {
	if engine == nil {
		engine = filter.DefaultEngine()
	}
	return &ListTranslator[T, M]{engine: engine, schema: schema}
}

// Translate composes the filter model decoded from values, the order by and the requested page onto q.
// Keys that are not ListQuery keys are decoded into M, matching field names case-insensitively or
// through the engine naming convention ("min_price" for MinPrice). Unknown keys are rejected.
func (a *ListTranslator[T, M]) Translate(q query.Queryable[T], values url.Values) (query.Queryable[T], error) {
	listValues, modelValues := split(values)

	list, err := a.decodeListQuery(listValues)
	if err != nil {
		return nil, err
	}

	var model M
	if err := a.decode(modelValues, &model, true); err != nil {
		return nil, e.NewBadRequestError(err.Error())
	}

	q, err = filter.FromModel(a.engine, q, a.schema, model)
	if err != nil {
		return nil, err
	}

	if list.OrderBy != "" {
		direction := types.Ascending
		if list.Direction != "" {
			if direction, err = filter.ParseDirection(list.Direction); err != nil {
				return nil, err
			}
		}
		if q, err = filter.OrderBy(a.engine, q, list.OrderBy, direction); err != nil {
			return nil, err
		}
	}

	return filter.Paginate(q, list.PageSize, list.Page), nil
}

func (a *ListTranslator[T, M]) decodeListQuery(values map[string]interface{}) (m.ListQuery, error) {
	var list m.ListQuery
	if err := a.decode(values, &list, false); err != nil {
		return list, e.NewBadRequestError(err.Error())
	}
	list.Direction = strings.ToLower(list.Direction)

	if err := validate.Struct(list); err != nil {
		return list, e.NewBadRequestError(e.TranslateValidatorError(err, trans).Error())
	}

	if list.PageSize == 0 {
		list.PageSize = a.engine.DefaultPageSize()
	}
	if list.Page == 0 {
		list.Page = 1
	}
	if err := validate.Var(list.PageSize, fmt.Sprintf("max=%d", a.engine.MaxPageSize())); err != nil {
		return list, e.NewBadRequestError(fmt.Sprintf("pageSize must be %d or less", a.engine.MaxPageSize()))
	}
	return list, nil
}

func (a *ListTranslator[T, M]) decode(values map[string]interface{}, result interface{}, rejectUnknown bool) error {
	naming := a.engine.Naming()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       types.DecodeHook(),
		WeaklyTypedInput: true,
		ErrorUnused:      rejectUnknown,
		Result:           result,
		MatchName: func(key, field string) bool {
			return strings.EqualFold(key, field) || key == naming.ToColumn(field)
		},
	})
	if err != nil {
		return e.NewInternalError(err.Error())
	}
	return decoder.Decode(values)
}

// split separates the ListQuery keys from the filter model keys. Blank values are dropped, a key
// given several times keeps all of its values.
func split(values url.Values) (map[string]interface{}, map[string]interface{}) {
	list := make(map[string]interface{})
	model := make(map[string]interface{})

	for key, all := range values {
		present := make([]string, 0, len(all))
		for _, value := range all {
			if strings.TrimSpace(value) != "" {
				present = append(present, value)
			}
		}
		if len(present) == 0 {
			continue
		}

		target := model
		for _, listKey := range m.ListQueryKeys {
			if key == listKey {
				target = list
				break
			}
		}

		if len(present) == 1 {
			target[key] = present[0]
		} else {
			target[key] = present
		}
	}
	return list, model
}
