// Package kvstore stores compliments in the key-value store: one hash per
// compliment under compliment:<id>, with its id pushed onto either the
// approved_compliments list or the moderation_queue list.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"quirkit/internal/domain/entity"
	"quirkit/internal/infra/kv"
	"quirkit/internal/repository"
)

const (
	ApprovedListKey   = "approved_compliments"
	ModerationListKey = "moderation_queue"
)

// ComplimentKey is the hash key holding one compliment.
func ComplimentKey(id string) string {
	return "compliment:" + id
}

type ComplimentRepo struct{ store kv.Store }

func NewComplimentRepo(store kv.Store) repository.ComplimentRepository {
	return &ComplimentRepo{store: store}
}

func (repo *ComplimentRepo) Append(ctx context.Context, c entity.Compliment) error {
	fields, err := toHash(c)
	if err != nil {
		return fmt.Errorf("Append: %w", err)
	}
	if err := repo.store.HSet(ctx, ComplimentKey(c.ID), fields); err != nil {
		return fmt.Errorf("Append: %w", err)
	}

	list := ModerationListKey
	if c.Approved() {
		list = ApprovedListKey
	}
	if err := repo.store.LPush(ctx, list, c.ID); err != nil {
		return fmt.Errorf("Append: push %s: %w", list, err)
	}
	return nil
}

func (repo *ComplimentRepo) Filter(ctx context.Context, keep func(entity.Compliment) bool) ([]entity.Compliment, error) {
	seen := make(map[string]struct{})
	out := make([]entity.Compliment, 0, 50)

	for _, list := range []string{ApprovedListKey, ModerationListKey} {
		ids, err := repo.store.LRange(ctx, list, 0, -1)
		if err != nil {
			return nil, fmt.Errorf("Filter: range %s: %w", list, err)
		}
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			fields, err := repo.store.HGetAll(ctx, ComplimentKey(id))
			if err != nil {
				return nil, fmt.Errorf("Filter: %w", err)
			}
			if len(fields) == 0 {
				continue
			}
			c, err := fromHash(fields)
			if err != nil {
				return nil, fmt.Errorf("Filter: compliment %s: %w", id, err)
			}
			if keep(c) {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func toHash(c entity.Compliment) (map[string]string, error) {
	flags := "[]"
	if len(c.ModerationFlags) > 0 {
		b, err := json.Marshal(c.ModerationFlags)
		if err != nil {
			return nil, fmt.Errorf("marshal moderation flags: %w", err)
		}
		flags = string(b)
	}
	return map[string]string{
		"id":              c.ID,
		"message":         c.Message,
		"sender":          c.Sender,
		"timestamp":       strconv.FormatInt(c.Timestamp, 10),
		"isModerated":     strconv.FormatBool(c.IsModerated),
		"isApproved":      strconv.FormatBool(c.IsApproved),
		"moderationFlags": flags,
	}, nil
}

func fromHash(fields map[string]string) (entity.Compliment, error) {
	c := entity.Compliment{
		ID:      fields["id"],
		Message: fields["message"],
		Sender:  fields["sender"],
	}

	var err error
	if c.Timestamp, err = strconv.ParseInt(fields["timestamp"], 10, 64); err != nil {
		return entity.Compliment{}, fmt.Errorf("parse timestamp: %w", err)
	}
	if c.IsModerated, err = strconv.ParseBool(fields["isModerated"]); err != nil {
		return entity.Compliment{}, fmt.Errorf("parse isModerated: %w", err)
	}
	if c.IsApproved, err = strconv.ParseBool(fields["isApproved"]); err != nil {
		return entity.Compliment{}, fmt.Errorf("parse isApproved: %w", err)
	}
	if raw := fields["moderationFlags"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &c.ModerationFlags); err != nil {
			return entity.Compliment{}, fmt.Errorf("parse moderationFlags: %w", err)
		}
		if len(c.ModerationFlags) == 0 {
			c.ModerationFlags = nil
		}
	}
	return c, nil
}
