package proposal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// Store persists a new proposal with its items and the initial revision.
	// The sequential per-user number is assigned inside the same transaction.
	Store(ctx context.Context, userId int, proposal Proposal, revision Revision) (Proposal, error)
	GetAll(ctx context.Context, userId int, status Status) ([]Proposal, error)
	GetByUid(ctx context.Context, userId int, uid string) (Proposal, error)
	// UpdateWithRevision rewrites the proposal content and its items and
	// appends the revision record atomically.
	UpdateWithRevision(ctx context.Context, userId int, proposal Proposal, revision Revision) (bool, error)
	// UpdateStatusWithRevision updates status, timestamps, and revision number,
	// and appends the revision record atomically.
	UpdateStatusWithRevision(ctx context.Context, userId int, proposal Proposal, revision Revision) (bool, error)
	Delete(ctx context.Context, userId int, proposalId int) (bool, error)
	ListRevisions(ctx context.Context, userId int, proposalId int) ([]Revision, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewProposalRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, proposal Proposal, revision Revision) (Proposal, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Proposal{}, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var number int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM proposals WHERE user_id = $1`, userId).Scan(&number)
	if err != nil {
		err := fmt.Errorf("could not assign proposal number: %w", err)
		log.Error(err)
		return Proposal{}, err
	}
	proposal.Number = number

	query := `INSERT INTO proposals (user_id, uid, number, revision, client_name, client_email, client_phone,
				client_address, title, description, notes, payment_methods, validity_days, status, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	var id int
	err = tx.QueryRow(ctx, query,
		userId,
		proposal.Uid,
		proposal.Number,
		proposal.Revision,
		proposal.Client.Name,
		proposal.Client.Email,
		proposal.Client.Phone,
		proposal.Client.Address,
		proposal.Title,
		proposal.Description,
		proposal.Notes,
		proposal.PaymentMethods,
		proposal.ValidityDays,
		proposal.Status,
		proposal.CreatedAt,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store proposal: %w", err)
		log.Error(err)
		return Proposal{}, err
	}
	proposal.ID = id

	if err := insertItems(ctx, tx, id, proposal.Items); err != nil {
		return Proposal{}, err
	}
	revision.ProposalID = id
	if err := insertRevision(ctx, tx, revision); err != nil {
		return Proposal{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Proposal{}, fmt.Errorf("could not commit transaction: %w", err)
	}
	return proposal, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int, status Status) ([]Proposal, error) {
	query := `SELECT id, uid, number, revision, client_name, client_email, client_phone, client_address,
				title, description, notes, payment_methods, validity_days, status, created_at, sent_at,
				accepted_at, pdf_generated_at
				FROM proposals WHERE user_id = $1`
	args := []any{userId}
	if status != "" {
		args = append(args, status)
		query += " AND status = $2"
	}
	query += " ORDER BY number DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query proposals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var proposals []Proposal
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, proposal)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	for i := range proposals {
		items, err := r.loadItems(ctx, proposals[i].ID)
		if err != nil {
			return nil, err
		}
		proposals[i].Items = items
	}

	return proposals, nil
}

func (r *RepoImpl) GetByUid(ctx context.Context, userId int, uid string) (Proposal, error) {
	query := `SELECT id, uid, number, revision, client_name, client_email, client_phone, client_address,
				title, description, notes, payment_methods, validity_days, status, created_at, sent_at,
				accepted_at, pdf_generated_at
				FROM proposals WHERE user_id = $1 AND uid = $2`
	rows, err := r.db.Query(ctx, query, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not query proposal: %w", err)
		log.Error(err)
		return Proposal{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Proposal{}, err
		}
		return Proposal{}, ErrProposalNotFound
	}
	proposal, err := scanProposal(rows)
	if err != nil {
		return Proposal{}, err
	}
	rows.Close()

	items, err := r.loadItems(ctx, proposal.ID)
	if err != nil {
		return Proposal{}, err
	}
	proposal.Items = items
	return proposal, nil
}

func (r *RepoImpl) UpdateWithRevision(ctx context.Context, userId int, proposal Proposal, revision Revision) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE proposals SET
				  revision = $1,
				  client_name = $2,
				  client_email = $3,
				  client_phone = $4,
				  client_address = $5,
				  title = $6,
				  description = $7,
				  notes = $8,
				  payment_methods = $9,
				  validity_days = $10
			  WHERE id = $11 AND user_id = $12`
	tag, err := tx.Exec(ctx, query,
		proposal.Revision,
		proposal.Client.Name,
		proposal.Client.Email,
		proposal.Client.Phone,
		proposal.Client.Address,
		proposal.Title,
		proposal.Description,
		proposal.Notes,
		proposal.PaymentMethods,
		proposal.ValidityDays,
		proposal.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update proposal: %w", err)
		log.Error(err)
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, "DELETE FROM proposal_items WHERE proposal_id = $1", proposal.ID); err != nil {
		err := fmt.Errorf("could not clear proposal items: %w", err)
		log.Error(err)
		return false, err
	}
	if err := insertItems(ctx, tx, proposal.ID, proposal.Items); err != nil {
		return false, err
	}
	if err := insertRevision(ctx, tx, revision); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("could not commit transaction: %w", err)
	}
	return true, nil
}

func (r *RepoImpl) UpdateStatusWithRevision(ctx context.Context, userId int, proposal Proposal, revision Revision) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE proposals SET
				  revision = $1,
				  status = $2,
				  sent_at = $3,
				  accepted_at = $4,
				  pdf_generated_at = $5
			  WHERE id = $6 AND user_id = $7`
	tag, err := tx.Exec(ctx, query,
		proposal.Revision,
		proposal.Status,
		proposal.SentAt,
		proposal.AcceptedAt,
		proposal.PdfGeneratedAt,
		proposal.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update proposal status: %w", err)
		log.Error(err)
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if err := insertRevision(ctx, tx, revision); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("could not commit transaction: %w", err)
	}
	return true, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, proposalId int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM proposals WHERE id = $1 AND user_id = $2", proposalId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete proposal: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) ListRevisions(ctx context.Context, userId int, proposalId int) ([]Revision, error) {
	query := `SELECT r.id, r.proposal_id, r.number, r.summary, r.changes, r.created_at
				FROM proposal_revisions r
				JOIN proposals p ON p.id = r.proposal_id
				WHERE r.proposal_id = $1 AND p.user_id = $2
				ORDER BY r.number`
	rows, err := r.db.Query(ctx, query, proposalId, userId)
	if err != nil {
		err := fmt.Errorf("could not query revisions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		var revision Revision
		var changes []byte
		if err := rows.Scan(
			&revision.ID,
			&revision.ProposalID,
			&revision.Number,
			&revision.Summary,
			&changes,
			&revision.CreatedAt,
		); err != nil {
			err := fmt.Errorf("could not scan revision: %w", err)
			log.Error(err)
			return nil, err
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &revision.Changes); err != nil {
				return nil, fmt.Errorf("could not decode revision changes: %w", err)
			}
		}
		revisions = append(revisions, revision)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return revisions, nil
}

func (r *RepoImpl) loadItems(ctx context.Context, proposalId int) ([]Item, error) {
	query := `SELECT service_id, name, description, price_type, unit_price, quantity, line_total, position
				FROM proposal_items WHERE proposal_id = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, query, proposalId)
	if err != nil {
		err := fmt.Errorf("could not query proposal items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ServiceID,
			&item.Name,
			&item.Description,
			&item.PriceType,
			&item.UnitPrice,
			&item.Quantity,
			&item.LineTotal,
			&item.Position,
		); err != nil {
			err := fmt.Errorf("could not scan proposal item: %w", err)
			log.Error(err)
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func insertItems(ctx context.Context, tx pgx.Tx, proposalId int, items []Item) error {
	query := `INSERT INTO proposal_items (proposal_id, service_id, name, description, price_type, unit_price,
				quantity, line_total, position) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, item := range items {
		if _, err := tx.Exec(ctx, query,
			proposalId,
			item.ServiceID,
			item.Name,
			item.Description,
			item.PriceType,
			item.UnitPrice,
			item.Quantity,
			item.LineTotal,
			item.Position,
		); err != nil {
			err := fmt.Errorf("could not store proposal item: %w", err)
			log.Error(err)
			return err
		}
	}
	return nil
}

func insertRevision(ctx context.Context, tx pgx.Tx, revision Revision) error {
	changes, err := json.Marshal(revision.Changes)
	if err != nil {
		return fmt.Errorf("could not encode revision changes: %w", err)
	}
	query := `INSERT INTO proposal_revisions (proposal_id, number, summary, changes, created_at)
				VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(ctx, query,
		revision.ProposalID,
		revision.Number,
		revision.Summary,
		changes,
		revision.CreatedAt,
	); err != nil {
		err := fmt.Errorf("could not store revision: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func scanProposal(rows pgx.Rows) (Proposal, error) {
	var proposal Proposal
	err := rows.Scan(
		&proposal.ID,
		&proposal.Uid,
		&proposal.Number,
		&proposal.Revision,
		&proposal.Client.Name,
		&proposal.Client.Email,
		&proposal.Client.Phone,
		&proposal.Client.Address,
		&proposal.Title,
		&proposal.Description,
		&proposal.Notes,
		&proposal.PaymentMethods,
		&proposal.ValidityDays,
		&proposal.Status,
		&proposal.CreatedAt,
		&proposal.SentAt,
		&proposal.AcceptedAt,
		&proposal.PdfGeneratedAt,
	)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Errorf("could not scan proposal: %v", err)
		}
		return Proposal{}, err
	}
	return proposal, nil
}
