package proposal

import (
	"context"
	"sort"
)

type StubProposalRepo struct {
	nextId     int
	nextNumber int
	data       map[int]Proposal
	revisions  map[int][]Revision
}

func NewStubProposalRepo() *StubProposalRepo {
	return &StubProposalRepo{
		data:      map[int]Proposal{},
		revisions: map[int][]Revision{},
	}
}

func (s *StubProposalRepo) Store(ctx context.Context, userId int, proposal Proposal, revision Revision) (Proposal, error) {
	s.nextId++
	s.nextNumber++
	proposal.ID = s.nextId
	proposal.Number = s.nextNumber
	s.data[proposal.ID] = proposal
	revision.ProposalID = proposal.ID
	s.revisions[proposal.ID] = append(s.revisions[proposal.ID], revision)
	return proposal, nil
}

func (s *StubProposalRepo) GetAll(ctx context.Context, userId int, status Status) ([]Proposal, error) {
	proposals := make([]Proposal, 0, len(s.data))
	for _, proposal := range s.data {
		if status != "" && proposal.Status != status {
			continue
		}
		proposals = append(proposals, proposal)
	}
	sort.Slice(proposals, func(i, j int) bool {
		return proposals[i].Number > proposals[j].Number
	})
	return proposals, nil
}

func (s *StubProposalRepo) GetByUid(ctx context.Context, userId int, uid string) (Proposal, error) {
	for _, proposal := range s.data {
		if proposal.Uid == uid {
			return proposal, nil
		}
	}
	return Proposal{}, ErrProposalNotFound
}

func (s *StubProposalRepo) UpdateWithRevision(ctx context.Context, userId int, proposal Proposal, revision Revision) (bool, error) {
	if _, ok := s.data[proposal.ID]; !ok {
		return false, nil
	}
	s.data[proposal.ID] = proposal
	s.revisions[proposal.ID] = append(s.revisions[proposal.ID], revision)
	return true, nil
}

func (s *StubProposalRepo) UpdateStatusWithRevision(ctx context.Context, userId int, proposal Proposal, revision Revision) (bool, error) {
	return s.UpdateWithRevision(ctx, userId, proposal, revision)
}

func (s *StubProposalRepo) Delete(ctx context.Context, userId int, proposalId int) (bool, error) {
	if _, ok := s.data[proposalId]; !ok {
		return false, nil
	}
	delete(s.data, proposalId)
	delete(s.revisions, proposalId)
	return true, nil
}

func (s *StubProposalRepo) ListRevisions(ctx context.Context, userId int, proposalId int) ([]Revision, error) {
	revisions := make([]Revision, len(s.revisions[proposalId]))
	copy(revisions, s.revisions[proposalId])
	sort.Slice(revisions, func(i, j int) bool {
		return revisions[i].Number < revisions[j].Number
	})
	return revisions, nil
}

func (s *StubProposalRepo) Cleanup() {
	s.nextId = 0
	s.nextNumber = 0
	s.data = map[int]Proposal{}
	s.revisions = map[int][]Revision{}
}
