package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mohitmishra786/cv-wiz/internal/types"
)

// ItemKind identifies a profile item category.
type ItemKind string

// Profile item categories. Each maps to one section of the career profile.
const (
	KindExperience  ItemKind = "experience"
	KindProject     ItemKind = "project"
	KindEducation   ItemKind = "education"
	KindSkill       ItemKind = "skill"
	KindPublication ItemKind = "publication"
)

// ValidKind reports whether k names a known profile item category.
func ValidKind(k ItemKind) bool {
	switch k {
	case KindExperience, KindProject, KindEducation, KindSkill, KindPublication:
		return true
	}
	return false
}

// ProfileItem is one stored career profile entry. Content holds the full
// item JSON; position preserves the user's ordering within a category.
type ProfileItem struct {
	ID       uuid.UUID       `json:"id"`
	UserID   uuid.UUID       `json:"user_id"`
	Kind     ItemKind        `json:"kind"`
	Position int             `json:"position"`
	Content  json.RawMessage `json:"content"`
}

// CreateProfileItem stores a new profile item and returns its ID. The item
// is appended after the user's existing items in the same category.
func (db *DB) CreateProfileItem(ctx context.Context, userID uuid.UUID, kind ItemKind, content any) (uuid.UUID, error) {
	if !ValidKind(kind) {
		return uuid.Nil, fmt.Errorf("unknown profile item kind: %s", kind)
	}
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile item: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO profile_items (user_id, kind, position, content)
		 VALUES ($1, $2,
		         (SELECT COALESCE(MAX(position), 0) + 1 FROM profile_items WHERE user_id = $1 AND kind = $2),
		         $3)
		 RETURNING id`,
		userID, kind, jsonBytes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create %s item: %w", kind, err)
	}
	return id, nil
}

// UpdateProfileItem replaces the content of an existing item.
func (db *DB) UpdateProfileItem(ctx context.Context, itemID uuid.UUID, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal profile item: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE profile_items SET content = $1, updated_at = NOW() WHERE id = $2`,
		jsonBytes, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile item not found: %s", itemID)
	}
	return nil
}

// GetProfileItem retrieves one item by ID. Returns nil when not found.
func (db *DB) GetProfileItem(ctx context.Context, itemID uuid.UUID) (*ProfileItem, error) {
	var item ProfileItem
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, kind, position, content FROM profile_items WHERE id = $1`,
		itemID,
	).Scan(&item.ID, &item.UserID, &item.Kind, &item.Position, &item.Content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile item: %w", err)
	}
	return &item, nil
}

// ListProfileItems retrieves all of a user's items in one category, in the
// user's ordering.
func (db *DB) ListProfileItems(ctx context.Context, userID uuid.UUID, kind ItemKind) ([]ProfileItem, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, kind, position, content
		 FROM profile_items WHERE user_id = $1 AND kind = $2
		 ORDER BY position ASC`,
		userID, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s items: %w", kind, err)
	}
	defer rows.Close()

	var items []ProfileItem
	for rows.Next() {
		var item ProfileItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Kind, &item.Position, &item.Content); err != nil {
			return nil, fmt.Errorf("failed to scan profile item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// DeleteProfileItem removes one item.
func (db *DB) DeleteProfileItem(ctx context.Context, itemID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM profile_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete profile item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile item not found: %s", itemID)
	}
	return nil
}

// GetSettings retrieves the user's preferences. Returns defaults when the
// user has never saved any.
func (db *DB) GetSettings(ctx context.Context, userID uuid.UUID) (*types.UserSettings, error) {
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`SELECT settings FROM users WHERE id = $1`,
		userID,
	).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings := &types.UserSettings{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, settings); err != nil {
			return nil, fmt.Errorf("failed to decode settings: %w", err)
		}
	}
	return settings, nil
}

// UpdateSettings stores the user's preferences.
func (db *DB) UpdateSettings(ctx context.Context, userID uuid.UUID, settings *types.UserSettings) error {
	jsonBytes, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE users SET settings = $1, updated_at = NOW() WHERE id = $2`,
		jsonBytes, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// GetProfile assembles the user's complete career profile.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	user, err := db.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	profile := &types.UserProfile{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	}

	settings, err := db.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Settings = settings

	rows, err := db.pool.Query(ctx,
		`SELECT id, kind, content FROM profile_items
		 WHERE user_id = $1 ORDER BY kind, position ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var kind ItemKind
		var content []byte
		if err := rows.Scan(&id, &kind, &content); err != nil {
			return nil, fmt.Errorf("failed to scan profile item: %w", err)
		}
		if err := appendItem(profile, id, kind, content); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func appendItem(profile *types.UserProfile, id uuid.UUID, kind ItemKind, content []byte) error {
	switch kind {
	case KindExperience:
		var v types.Experience
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("failed to decode experience %s: %w", id, err)
		}
		v.ID = id.String()
		profile.Experiences = append(profile.Experiences, v)
	case KindProject:
		var v types.Project
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("failed to decode project %s: %w", id, err)
		}
		v.ID = id.String()
		profile.Projects = append(profile.Projects, v)
	case KindEducation:
		var v types.Education
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("failed to decode education %s: %w", id, err)
		}
		v.ID = id.String()
		profile.Educations = append(profile.Educations, v)
	case KindSkill:
		var v types.Skill
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("failed to decode skill %s: %w", id, err)
		}
		v.ID = id.String()
		profile.Skills = append(profile.Skills, v)
	case KindPublication:
		var v types.Publication
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("failed to decode publication %s: %w", id, err)
		}
		v.ID = id.String()
		profile.Publications = append(profile.Publications, v)
	default:
		return fmt.Errorf("unknown profile item kind: %s", kind)
	}
	return nil
}
