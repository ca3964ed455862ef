package shopify

import (
	"context"
	"fmt"

	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/domain/repository"
	"github.com/sda-collective/member-directory/internal/metaobject"
)

const defaultPageSize = 50

// MemberRepo implements repository.MemberRepository on the admin API's
// metaobject surface.
type MemberRepo struct {
	Client     *Client
	ObjectType string
	PageSize   int
}

func NewMemberRepo(client *Client, objectType string) *MemberRepo {
	return &MemberRepo{Client: client, ObjectType: objectType, PageSize: defaultPageSize}
}

type userErrorNode struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
}

func toUserErrors(nodes []userErrorNode) repository.UserErrors {
	if len(nodes) == 0 {
		return nil
	}
	out := make(repository.UserErrors, 0, len(nodes))
	for _, n := range nodes {
		field := ""
		if len(n.Field) > 0 {
			// The mutation reports paths like ["metaobject","fields","0","value"];
			// the leaf segment is the useful part.
			field = n.Field[len(n.Field)-1]
		}
		out = append(out, repository.UserError{Field: field, Message: n.Message, Code: n.Code})
	}
	return out
}

type fieldNode struct {
	Key        string      `json:"key"`
	Value      *string     `json:"value"`
	Type       string      `json:"type"`
	Reference  *objectNode `json:"reference"`
	References *edgesNode  `json:"references"`
}

type edgesNode struct {
	Edges []struct {
		Node objectNode `json:"node"`
	} `json:"edges"`
}

type objectNode struct {
	ID     string      `json:"id"`
	Handle string      `json:"handle"`
	Fields []fieldNode `json:"fields"`
}

func (o *objectNode) toRecord() *metaobject.Record {
	rec := &metaobject.Record{ID: o.ID, Handle: o.Handle}
	for _, f := range o.Fields {
		raw := metaobject.RawField{
			Key:   f.Key,
			Type:  metaobject.ValueType(f.Type),
			Value: f.Value,
		}
		if f.Reference != nil && f.Reference.ID != "" {
			nested := f.Reference.toRecord()
			raw.Reference = nested
		}
		if f.References != nil {
			for _, e := range f.References.Edges {
				if e.Node.ID == "" {
					continue
				}
				raw.References = append(raw.References, *e.Node.toRecord())
			}
		}
		rec.Fields = append(rec.Fields, raw)
	}
	return rec
}

func (r *MemberRepo) Create(ctx context.Context, name, email string, role entity.Role) (string, string, error) {
	var out struct {
		MetaobjectCreate struct {
			Metaobject *struct {
				ID     string `json:"id"`
				Handle string `json:"handle"`
			} `json:"metaobject"`
			UserErrors []userErrorNode `json:"userErrors"`
		} `json:"metaobjectCreate"`
	}
	vars := map[string]any{
		"metaobject": map[string]any{
			"type": r.ObjectType,
			"fields": []map[string]string{
				{"key": "name", "value": name},
				{"key": "email", "value": email},
				{"key": "role", "value": string(role)},
			},
		},
	}
	if err := r.Client.Do(ctx, "metaobjectCreate", mutationMetaobjectCreate, vars, &out); err != nil {
		return "", "", err
	}
	if ue := toUserErrors(out.MetaobjectCreate.UserErrors); ue != nil {
		return "", "", ue
	}
	mo := out.MetaobjectCreate.Metaobject
	if mo == nil || mo.Handle == "" {
		return "", "", &TransportError{Op: "metaobjectCreate", Err: fmt.Errorf("no metaobject in response")}
	}
	return mo.Handle, mo.ID, nil
}

func (r *MemberRepo) GetByHandle(ctx context.Context, handle string) (*metaobject.Record, error) {
	var out struct {
		MetaobjectByHandle *objectNode `json:"metaobjectByHandle"`
	}
	vars := map[string]any{
		"handle": map[string]string{
			"type":   r.ObjectType,
			"handle": handle,
		},
	}
	if err := r.Client.Do(ctx, "metaobjectByHandle", queryMetaobjectByHandle, vars, &out); err != nil {
		return nil, err
	}
	if out.MetaobjectByHandle == nil {
		return nil, nil
	}
	return out.MetaobjectByHandle.toRecord(), nil
}

func (r *MemberRepo) Update(ctx context.Context, id string, fields []metaobject.RawField) error {
	return r.updateObject(ctx, id, fields)
}

func (r *MemberRepo) UpdateReview(ctx context.Context, reviewID string, fields []metaobject.RawField) error {
	return r.updateObject(ctx, reviewID, fields)
}

func (r *MemberRepo) updateObject(ctx context.Context, id string, fields []metaobject.RawField) error {
	var out struct {
		MetaobjectUpdate struct {
			UserErrors []userErrorNode `json:"userErrors"`
		} `json:"metaobjectUpdate"`
	}
	encoded := make([]map[string]string, 0, len(fields))
	for _, f := range fields {
		value := ""
		if f.Value != nil {
			value = *f.Value
		}
		encoded = append(encoded, map[string]string{"key": f.Key, "value": value})
	}
	vars := map[string]any{
		"id":         id,
		"metaobject": map[string]any{"fields": encoded},
	}
	if err := r.Client.Do(ctx, "metaobjectUpdate", mutationMetaobjectUpdate, vars, &out); err != nil {
		return err
	}
	if ue := toUserErrors(out.MetaobjectUpdate.UserErrors); ue != nil {
		return ue
	}
	return nil
}

func (r *MemberRepo) List(ctx context.Context, opts repository.ListOptions) ([]entity.Summary, repository.PageInfo, error) {
	var out struct {
		Metaobjects struct {
			Edges []struct {
				Node struct {
					ID        string `json:"id"`
					Handle    string `json:"handle"`
					UpdatedAt string `json:"updatedAt"`
					Name      *struct {
						Value string `json:"value"`
					} `json:"name"`
					Email *struct {
						Value string `json:"value"`
					} `json:"email"`
					Role *struct {
						Value string `json:"value"`
					} `json:"role"`
				} `json:"node"`
			} `json:"edges"`
			PageInfo repository.PageInfo `json:"pageInfo"`
		} `json:"metaobjects"`
	}

	size := r.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	vars := map[string]any{
		"type":    r.ObjectType,
		"query":   roleQuery(opts.Role),
		"sortKey": "updated_at",
		"reverse": opts.Reverse,
	}
	if opts.Direction == "previous" {
		vars["last"] = size
		if opts.Cursor != "" {
			vars["before"] = opts.Cursor
		}
	} else {
		vars["first"] = size
		if opts.Cursor != "" {
			vars["after"] = opts.Cursor
		}
	}

	if err := r.Client.Do(ctx, "metaobjects", queryMetaobjects, vars, &out); err != nil {
		return nil, repository.PageInfo{}, err
	}

	members := make([]entity.Summary, 0, len(out.Metaobjects.Edges))
	for _, e := range out.Metaobjects.Edges {
		s := entity.Summary{
			ID:        e.Node.ID,
			Handle:    e.Node.Handle,
			UpdatedAt: e.Node.UpdatedAt,
		}
		if e.Node.Name != nil {
			s.Name = e.Node.Name.Value
		}
		if e.Node.Email != nil {
			s.Email = e.Node.Email.Value
		}
		if e.Node.Role != nil {
			s.Role = entity.Role(e.Node.Role.Value)
		}
		members = append(members, s)
	}
	return members, out.Metaobjects.PageInfo, nil
}

func roleQuery(role entity.Role) string {
	if role == "" {
		return ""
	}
	return fmt.Sprintf("fields.role:%q", string(role))
}
