package repository

// schema is portable between SQLite and PostgreSQL. JSON columns hold the
// nested market, legs and factor records.
const schema = `
CREATE TABLE IF NOT EXISTS opportunities (
    id            TEXT PRIMARY KEY,
    fingerprint   TEXT NOT NULL UNIQUE,
    event_id      TEXT NOT NULL DEFAULT '',
    kind          TEXT NOT NULL,
    sport         TEXT NOT NULL DEFAULT '',
    league        TEXT NOT NULL DEFAULT '',
    match_id      TEXT NOT NULL,
    home_team     TEXT NOT NULL,
    away_team     TEXT NOT NULL,
    commence_time TIMESTAMP NOT NULL,
    market        TEXT NOT NULL,
    legs          TEXT NOT NULL,
    edge_percent  DOUBLE PRECISION NOT NULL DEFAULT 0,
    source        TEXT NOT NULL DEFAULT '',
    ingested_at   TIMESTAMP NOT NULL,
    expired       BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_opportunities_commence ON opportunities(commence_time);

CREATE TABLE IF NOT EXISTS parlays (
    id                   TEXT PRIMARY KEY,
    fingerprint          TEXT NOT NULL UNIQUE,
    sportsbook           TEXT NOT NULL,
    strategy             TEXT NOT NULL,
    risk_profile         TEXT NOT NULL,
    risk_level           TEXT NOT NULL,
    combined_odds        DOUBLE PRECISION NOT NULL,
    pattern_id           TEXT NOT NULL DEFAULT '',
    correlation_strength DOUBLE PRECISION NOT NULL DEFAULT 1,
    edge                 DOUBLE PRECISION NOT NULL,
    status               TEXT NOT NULL,
    replaced_by          TEXT NOT NULL DEFAULT '',
    first_commence_time  TIMESTAMP NOT NULL,
    created_at           TIMESTAMP NOT NULL,
    updated_at           TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_parlays_status ON parlays(status, sportsbook);
CREATE INDEX IF NOT EXISTS idx_parlays_commence ON parlays(first_commence_time);

CREATE TABLE IF NOT EXISTS parlay_legs (
    parlay_id       TEXT NOT NULL,
    leg_index       INTEGER NOT NULL,
    leg_fingerprint TEXT NOT NULL,
    match_id        TEXT NOT NULL,
    leg             TEXT NOT NULL,
    PRIMARY KEY (parlay_id, leg_index)
);

CREATE INDEX IF NOT EXISTS idx_parlay_legs_fingerprint ON parlay_legs(leg_fingerprint);

CREATE TABLE IF NOT EXISTS correlation_patterns (
    id                TEXT PRIMARY KEY,
    name              TEXT NOT NULL,
    sport             TEXT NOT NULL,
    pattern_condition TEXT NOT NULL,
    outcomes          TEXT NOT NULL,
    independent_prob  DOUBLE PRECISION NOT NULL,
    joint_prob        DOUBLE PRECISION NOT NULL,
    sample_size       INTEGER NOT NULL DEFAULT 0,
    min_edge          DOUBLE PRECISION NOT NULL DEFAULT 0,
    source            TEXT NOT NULL DEFAULT '',
    created_at        TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS user_book_profiles (
    user_id                TEXT NOT NULL,
    sportsbook             TEXT NOT NULL,
    account_age_months     INTEGER NOT NULL DEFAULT -1,
    estimated_monthly_bets INTEGER NOT NULL DEFAULT 0,
    was_active_before      BOOLEAN NOT NULL DEFAULT FALSE,
    deposit_bracket        TEXT NOT NULL DEFAULT '',
    activity_sports        BOOLEAN NOT NULL DEFAULT FALSE,
    activity_casino        BOOLEAN NOT NULL DEFAULT FALSE,
    activity_poker         BOOLEAN NOT NULL DEFAULT FALSE,
    activity_live          BOOLEAN NOT NULL DEFAULT FALSE,
    is_limited             BOOLEAN NOT NULL DEFAULT FALSE,
    limited_at             TIMESTAMP NULL,
    onboarded_at           TIMESTAMP NOT NULL,
    PRIMARY KEY (user_id, sportsbook)
);

CREATE TABLE IF NOT EXISTS tracked_bets (
    id                 TEXT PRIMARY KEY,
    user_id            TEXT NOT NULL,
    sportsbook         TEXT NOT NULL,
    source             TEXT NOT NULL,
    opportunity_id     TEXT NOT NULL DEFAULT '',
    sport              TEXT NOT NULL DEFAULT '',
    league             TEXT NOT NULL DEFAULT '',
    market             TEXT NOT NULL DEFAULT '',
    selection_type     TEXT NOT NULL DEFAULT '',
    selection          TEXT NOT NULL DEFAULT '',
    line               DOUBLE PRECISION NULL,
    home_team          TEXT NOT NULL DEFAULT '',
    away_team          TEXT NOT NULL DEFAULT '',
    commence_time      TIMESTAMP NULL,
    placed_at          TIMESTAMP NOT NULL,
    stake              TEXT NOT NULL,
    stake_rounded      BOOLEAN NOT NULL DEFAULT FALSE,
    odds_taken         DOUBLE PRECISION NOT NULL,
    closing_odds       DOUBLE PRECISION NULL,
    clv                DOUBLE PRECISION NULL,
    result             TEXT NOT NULL DEFAULT '',
    seconds_after_post INTEGER NULL
);

CREATE INDEX IF NOT EXISTS idx_tracked_bets_user_book ON tracked_bets(user_id, sportsbook);
CREATE INDEX IF NOT EXISTS idx_tracked_bets_commence ON tracked_bets(commence_time);

CREATE TABLE IF NOT EXISTS book_health_scores (
    user_id            TEXT NOT NULL,
    sportsbook         TEXT NOT NULL,
    score_date         TEXT NOT NULL,
    factors            TEXT NOT NULL,
    total              INTEGER NOT NULL,
    level              TEXT NOT NULL,
    months_until_limit DOUBLE PRECISION NOT NULL,
    limit_probability  DOUBLE PRECISION NOT NULL,
    total_bets         INTEGER NOT NULL,
    calculated_at      TIMESTAMP NOT NULL,
    PRIMARY KEY (user_id, sportsbook, score_date)
);

CREATE TABLE IF NOT EXISTS limit_events (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    sportsbook  TEXT NOT NULL,
    kind        TEXT NOT NULL,
    note        TEXT NOT NULL DEFAULT '',
    occurred_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_limit_events_user_book ON limit_events(user_id, sportsbook);
`
