package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/domain/repository"
	"github.com/sda-collective/member-directory/internal/metaobject"
)

// MemberRepo is an in-memory repository.MemberRepository for tests and
// local development. Records are deep-copied on the way in and out so
// callers can never mutate shared state.
type MemberRepo struct {
	mu      sync.RWMutex
	byID    map[string]*storedRecord
	handles map[string]string // handle -> id
}

type storedRecord struct {
	rec       metaobject.Record
	updatedAt time.Time
}

func NewMemberRepo() *MemberRepo {
	return &MemberRepo{
		byID:    make(map[string]*storedRecord),
		handles: make(map[string]string),
	}
}

func (m *MemberRepo) Create(_ context.Context, name, email string, role entity.Role) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	handle := m.uniqueHandle(slugify(name))
	id := "gid://memory/Metaobject/" + uuid.NewString()
	rec := metaobject.Record{
		ID:     id,
		Handle: handle,
		Fields: []metaobject.RawField{
			textField("name", name),
			textField("email", email),
			textField("role", string(role)),
		},
	}
	m.byID[id] = &storedRecord{rec: cloneRecord(rec), updatedAt: time.Now()}
	m.handles[handle] = id
	return handle, id, nil
}

func (m *MemberRepo) GetByHandle(_ context.Context, handle string) (*metaobject.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.handles[handle]
	if !ok {
		return nil, nil
	}
	rec := cloneRecord(m.byID[id].rec)
	return &rec, nil
}

func (m *MemberRepo) Update(_ context.Context, id string, fields []metaobject.RawField) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, f := range fields {
		setField(&stored.rec, f)
	}
	stored.updatedAt = time.Now()
	return nil
}

func (m *MemberRepo) UpdateReview(ctx context.Context, reviewID string, fields []metaobject.RawField) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Reviews live as nested records inside member fields; rewrite every
	// nested record carrying the id.
	found := false
	for _, stored := range m.byID {
		for i := range stored.rec.Fields {
			raw := &stored.rec.Fields[i]
			if raw.Reference != nil && raw.Reference.ID == reviewID {
				for _, f := range fields {
					setField(raw.Reference, f)
				}
				found = true
			}
			for j := range raw.References {
				if raw.References[j].ID == reviewID {
					for _, f := range fields {
						setField(&raw.References[j], f)
					}
					found = true
				}
			}
		}
	}
	if !found {
		return repository.ErrNotFound
	}
	return nil
}

func (m *MemberRepo) List(_ context.Context, opts repository.ListOptions) ([]entity.Summary, repository.PageInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*storedRecord, 0, len(m.byID))
	for _, s := range m.byID {
		if opts.Role != "" && fieldValue(s.rec, "role") != string(opts.Role) {
			continue
		}
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if opts.Reverse {
			return all[i].updatedAt.After(all[j].updatedAt)
		}
		return all[i].updatedAt.Before(all[j].updatedAt)
	})

	out := make([]entity.Summary, 0, len(all))
	for _, s := range all {
		out = append(out, entity.Summary{
			ID:        s.rec.ID,
			Handle:    s.rec.Handle,
			Name:      fieldValue(s.rec, "name"),
			Email:     fieldValue(s.rec, "email"),
			Role:      entity.Role(fieldValue(s.rec, "role")),
			UpdatedAt: s.updatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, repository.PageInfo{}, nil
}

// Seed installs a full record directly, bypassing Create. Test helper.
func (m *MemberRepo) Seed(rec metaobject.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[rec.ID] = &storedRecord{rec: cloneRecord(rec), updatedAt: time.Now()}
	m.handles[rec.Handle] = rec.ID
}

func (m *MemberRepo) uniqueHandle(base string) string {
	if _, taken := m.handles[base]; !taken {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, taken := m.handles[candidate]; !taken {
			return candidate
		}
	}
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "member"
	}
	return out
}

func textField(key, value string) metaobject.RawField {
	v := value
	return metaobject.RawField{Key: key, Type: metaobject.TypeSingleLineText, Value: &v}
}

func setField(rec *metaobject.Record, f metaobject.RawField) {
	for i := range rec.Fields {
		if rec.Fields[i].Key == f.Key {
			if f.Type == "" {
				f.Type = rec.Fields[i].Type
			}
			rec.Fields[i] = f
			return
		}
	}
	if f.Type == "" {
		f.Type = metaobject.TypeSingleLineText
	}
	rec.Fields = append(rec.Fields, f)
}

func fieldValue(rec metaobject.Record, key string) string {
	for _, f := range rec.Fields {
		if f.Key == key && f.Value != nil {
			return *f.Value
		}
	}
	return ""
}

func cloneRecord(rec metaobject.Record) metaobject.Record {
	out := rec
	out.Fields = make([]metaobject.RawField, len(rec.Fields))
	for i, f := range rec.Fields {
		nf := f
		if f.Value != nil {
			v := *f.Value
			nf.Value = &v
		}
		if f.Reference != nil {
			nested := cloneRecord(*f.Reference)
			nf.Reference = &nested
		}
		if f.References != nil {
			nf.References = make([]metaobject.Record, len(f.References))
			for j, r := range f.References {
				nf.References[j] = cloneRecord(r)
			}
		}
		out.Fields[i] = nf
	}
	return out
}
