package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS rooms (
    room_id       TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    room_type     TEXT NOT NULL,
    facing_angle  INTEGER NOT NULL DEFAULT 0,
    wall_north    TEXT,
    wall_east     TEXT,
    wall_south    TEXT,
    wall_west     TEXT,
    image_url     TEXT,
    status        TEXT,
    created_at    TEXT,
    updated_at    TEXT,
    fetched_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS designs (
    design_id     TEXT PRIMARY KEY,
    room_id       TEXT NOT NULL,
    style         TEXT,
    palette       TEXT,
    image_url     TEXT,
    thumbnail_url TEXT,
    estimated_usd REAL,
    created_at    TEXT,
    fetched_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS vastu_reports (
    room_id       TEXT PRIMARY KEY,
    score         INTEGER NOT NULL,
    grade         TEXT,
    facing        TEXT,
    summary       TEXT,
    remedies_json TEXT,
    computed_at   TEXT,
    fetched_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS vastu_zones (
    room_id       TEXT NOT NULL REFERENCES vastu_reports(room_id) ON DELETE CASCADE,
    zone          TEXT NOT NULL,
    element       TEXT,
    score         INTEGER,
    verdict       TEXT,
    advice        TEXT,
    PRIMARY KEY (room_id, zone)
);

CREATE TABLE IF NOT EXISTS uploads (
    upload_ref    TEXT PRIMARY KEY,
    room_id       TEXT,
    file_path     TEXT NOT NULL,
    facing_angle  INTEGER NOT NULL,
    confirmed     INTEGER NOT NULL DEFAULT 0,
    uploaded_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_designs_room ON designs(room_id);
CREATE INDEX IF NOT EXISTS idx_rooms_created ON rooms(created_at);
CREATE INDEX IF NOT EXISTS idx_uploads_time ON uploads(uploaded_at);
`
