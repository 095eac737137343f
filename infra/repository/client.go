package repository

import (
	"context"

	"github.com/unnamedbank/banking/pkg/domain/client"
	"github.com/unnamedbank/banking/pkg/dto"
	clientrepo "github.com/unnamedbank/banking/pkg/repository/client"
	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a client repository bound to the given
// session.
func NewClientRepository(db *gorm.DB) clientrepo.Repository {
	return &clientRepository{db: db}
}

// sortColumns whitelists the sortable columns of the search endpoint.
var sortColumns = map[string]string{
	"id":        "id",
	"username":  "username",
	"fullName":  "full_name",
	"birthDate": "birth_date",
}

// SortColumn resolves a caller-supplied sort key to a column name; ok is
// false for anything outside the whitelist.
func SortColumn(sortBy string) (string, bool) {
	col, ok := sortColumns[sortBy]
	return col, ok
}

func (r *clientRepository) Create(
	ctx context.Context,
	create dto.ClientCreate,
) (*dto.ClientRead, error) {
	row := Client{
		Username:    create.Username,
		Password:    create.Password,
		FullName:    create.FullName,
		PhoneNumber: create.PhoneNumber,
		Email:       create.Email,
		BirthDate:   create.BirthDate,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return mapClientToRead(&row), nil
}

func (r *clientRepository) Get(ctx context.Context, id uint) (*dto.ClientRead, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *clientRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*dto.ClientRead, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *clientRepository) GetByPhone(
	ctx context.Context,
	phoneNumber string,
) (*dto.ClientRead, error) {
	return r.getOne(ctx, "phone_number = ?", phoneNumber)
}

func (r *clientRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.ClientRead, error) {
	return r.getOne(ctx, "email = ?", email)
}

// getOne returns (nil, nil) on a lookup miss; the services decide whether a
// miss is an error.
func (r *clientRepository) getOne(
	ctx context.Context,
	query string,
	arg any,
) (*dto.ClientRead, error) {
	var row Client
	err := r.db.WithContext(ctx).First(&row, query, arg).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return mapClientToRead(&row), nil
}

func (r *clientRepository) Update(
	ctx context.Context,
	id uint,
	update dto.ClientUpdate,
) (*dto.ClientRead, error) {
	updates := make(map[string]any)
	if update.PhoneNumber != nil {
		updates["phone_number"] = *update.PhoneNumber
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.ClearPhone {
		updates["phone_number"] = nil
	}
	if update.ClearEmail {
		updates["email"] = nil
	}
	if len(updates) > 0 {
		err := r.db.WithContext(ctx).
			Model(&Client{}).
			Where("id = ?", id).
			Updates(updates).Error
		if err != nil {
			// A race the service-level probe missed trips the unique
			// index here; map it back to the channel being set.
			if IsDuplicate(err) {
				if update.PhoneNumber != nil {
					return nil, client.ErrPhoneTaken
				}
				if update.Email != nil {
					return nil, client.ErrEmailTaken
				}
			}
			return nil, err
		}
	}
	return r.Get(ctx, id)
}

func (r *clientRepository) Search(
	ctx context.Context,
	filter dto.ClientFilter,
) (*dto.ClientPage, error) {
	q := r.db.WithContext(ctx).Model(&Client{})

	// Disjoint filter: first present criterion wins, the rest are ignored.
	switch {
	case filter.FullName != nil:
		q = q.Where("full_name LIKE ?", *filter.FullName)
	case filter.PhoneNumber != nil:
		q = q.Where("phone_number = ?", *filter.PhoneNumber)
	case filter.Email != nil:
		q = q.Where("email = ?", *filter.Email)
	case filter.BirthDate != nil:
		q = q.Where("birth_date > ?", *filter.BirthDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	column, ok := SortColumn(filter.SortBy)
	if !ok {
		column = "id"
	}

	var rows []Client
	err := q.Order(column).
		Offset(filter.Page * filter.Size).
		Limit(filter.Size).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]dto.ClientRead, 0, len(rows))
	for i := range rows {
		items = append(items, *mapClientToRead(&rows[i]))
	}
	return &dto.ClientPage{
		Items:         items,
		Page:          filter.Page,
		Size:          filter.Size,
		TotalElements: total,
	}, nil
}

func mapClientToRead(row *Client) *dto.ClientRead {
	return &dto.ClientRead{
		ID:          row.ID,
		Username:    row.Username,
		Password:    row.Password,
		FullName:    row.FullName,
		PhoneNumber: row.PhoneNumber,
		Email:       row.Email,
		BirthDate:   row.BirthDate,
		CreatedAt:   row.CreatedAt,
	}
}
