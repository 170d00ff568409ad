package db

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"CareTriage/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps documents in process. It is used when no DATABASE_URL is
// configured and by tests. Documents round-trip through BSON so decoding
// behaves like the mongo driver.
type MemoryStore struct {
	mu          sync.RWMutex
	name        string
	collections map[string][]bson.M
}

func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{name: name, collections: map[string][]bson.M{}}
}

func (s *MemoryStore) Name() string { return s.name }

func (s *MemoryStore) Insert(_ context.Context, collection string, doc interface{}) (string, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return "", err
	}
	oid, ok := m["_id"].(primitive.ObjectID)
	if !ok || oid.IsZero() {
		oid = primitive.NewObjectID()
		m["_id"] = oid
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], m)
	return oid.Hex(), nil
}

func (s *MemoryStore) FindByID(_ context.Context, collection, id string, out interface{}) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.collections[collection] {
		if doc["_id"] == oid {
			return decode(doc, out)
		}
	}
	return util.ErrNotFound
}

func (s *MemoryStore) FindMatching(_ context.Context, collection string, q Query, out interface{}) error {
	s.mu.RLock()
	var matched []bson.M
	for _, doc := range s.collections[collection] {
		ok, err := matches(doc, q.Filter)
		if err != nil {
			s.mu.RUnlock()
			return err
		}
		if ok {
			matched = append(matched, doc)
		}
	}
	s.mu.RUnlock()

	if len(q.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, key := range q.Sort {
				c := compare(matched[i][key.Key], matched[j][key.Key])
				if c == 0 {
					continue
				}
				if direction(key.Value) < 0 {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}

	if matched == nil {
		matched = []bson.M{}
	}
	raw, err := bson.Marshal(bson.M{"docs": matched})
	if err != nil {
		return err
	}
	return bson.Raw(raw).Lookup("docs").Unmarshal(out)
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) ListCollections(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func decode(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func direction(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	}
	return 1
}

func matches(doc bson.M, filter bson.M) (bool, error) {
	for key, cond := range filter {
		switch key {
		case "$or", "$and":
			subs, err := subFilters(cond)
			if err != nil {
				return false, err
			}
			hit := false
			for _, sub := range subs {
				ok, err := matches(doc, sub)
				if err != nil {
					return false, err
				}
				if ok {
					hit = true
					if key == "$or" {
						break
					}
				} else if key == "$and" {
					return false, nil
				}
			}
			if key == "$or" && !hit {
				return false, nil
			}
		default:
			ok, err := matchField(doc[key], cond)
			if err != nil || !ok {
				return false, err
			}
		}
	}
	return true, nil
}

func subFilters(v interface{}) ([]bson.M, error) {
	switch subs := v.(type) {
	case []bson.M:
		return subs, nil
	case bson.A:
		out := make([]bson.M, 0, len(subs))
		for _, s := range subs {
			m, ok := s.(bson.M)
			if !ok {
				return nil, fmt.Errorf("unsupported sub filter %T", s)
			}
			out = append(out, m)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported logical operand %T", v)
}

func matchField(value, cond interface{}) (bool, error) {
	ops, ok := cond.(bson.M)
	if !ok || !isOperatorDoc(ops) {
		return equal(value, cond), nil
	}
	for op, arg := range ops {
		switch op {
		case "$eq":
			if !equal(value, arg) {
				return false, nil
			}
		case "$ne":
			if equal(value, arg) {
				return false, nil
			}
		case "$regex":
			re, err := compileRegex(arg, ops["$options"])
			if err != nil {
				return false, err
			}
			s, ok := value.(string)
			if !ok || !re.MatchString(s) {
				return false, nil
			}
		case "$options":
		default:
			return false, fmt.Errorf("unsupported operator %s", op)
		}
	}
	return true, nil
}

func isOperatorDoc(m bson.M) bool {
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return false
		}
	}
	return len(m) > 0
}

func compileRegex(pattern, options interface{}) (*regexp.Regexp, error) {
	var expr, opts string
	switch p := pattern.(type) {
	case string:
		expr = p
	case primitive.Regex:
		expr, opts = p.Pattern, p.Options
	default:
		return nil, fmt.Errorf("unsupported $regex operand %T", pattern)
	}
	if o, ok := options.(string); ok {
		opts += o
	}
	if strings.Contains(opts, "i") {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}

func equal(a, b interface{}) bool {
	return compare(a, b) == 0 && sameKind(a, b)
}

func sameKind(a, b interface{}) bool {
	_, an := number(a)
	_, bn := number(b)
	if an && bn {
		return true
	}
	_, at := timestamp(a)
	_, bt := timestamp(b)
	if at && bt {
		return true
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

// compare orders values the way a mixed-type sort needs: nil first, then
// numbers, strings, ObjectIDs and timestamps.
func compare(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return cmp(x, y)
		}
	}
	if x, ok := timestamp(a); ok {
		if y, ok := timestamp(b); ok {
			return x.Compare(y)
		}
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case primitive.ObjectID:
		if y, ok := b.(primitive.ObjectID); ok {
			return strings.Compare(x.Hex(), y.Hex())
		}
	case bool:
		if y, ok := b.(bool); ok && x == y {
			return 0
		}
	}
	if reflect.DeepEqual(a, b) {
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func cmp(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func timestamp(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time(), true
	case time.Time:
		return t, true
	}
	return time.Time{}, false
}
