package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Spin Accounts
CREATE TABLE IF NOT EXISTS spin_accounts (
    user_id VARCHAR(64) PRIMARY KEY,
    username VARCHAR(100) NOT NULL DEFAULT '',
    available_spins INTEGER NOT NULL DEFAULT 0 CHECK (available_spins >= 0),
    total_spins_used INTEGER NOT NULL DEFAULT 0,
    total_chips_earned INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Spin Events (pending reward ledger)
CREATE TABLE IF NOT EXISTS spin_events (
    event_id UUID PRIMARY KEY,
    user_id VARCHAR(64) NOT NULL REFERENCES spin_accounts(user_id),
    spin_number INTEGER NOT NULL,
    display_outcome VARCHAR(100) NOT NULL DEFAULT '',
    reward_label VARCHAR(100) NOT NULL DEFAULT '',
    reward_source VARCHAR(20) NOT NULL DEFAULT '',
    chip_value INTEGER NOT NULL DEFAULT 0,
    milestone_size INTEGER NOT NULL DEFAULT 0,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_spin_events_user_status
    ON spin_events (user_id, status);

-- Deposit / Withdrawal requests
CREATE TABLE IF NOT EXISTS transfer_requests (
    request_id UUID PRIMARY KEY,
    user_id VARCHAR(64) NOT NULL,
    username VARCHAR(100) NOT NULL DEFAULT '',
    direction VARCHAR(20) NOT NULL,
    amount NUMERIC(12, 2) NOT NULL CHECK (amount >= 0),
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    resolved_by VARCHAR(64) NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_transfer_requests_status
    ON transfer_requests (status);
`
