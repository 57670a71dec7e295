package main

import (
	"context"
	crypto_rand "crypto/rand"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"lukechampine.com/frand"

	"github.com/zlitery/wordgrid/db"
	"github.com/zlitery/wordgrid/db/bcrypt"
	chatdb "github.com/zlitery/wordgrid/db/chat"
	"github.com/zlitery/wordgrid/db/dictionary"
	"github.com/zlitery/wordgrid/db/firestore"
	gamedb "github.com/zlitery/wordgrid/db/game"
	"github.com/zlitery/wordgrid/db/mongo"
	"github.com/zlitery/wordgrid/db/ranking"
	"github.com/zlitery/wordgrid/db/sql"
	"github.com/zlitery/wordgrid/db/sql/postgres"
	"github.com/zlitery/wordgrid/db/user"
	"github.com/zlitery/wordgrid/game/alphabet"
	"github.com/zlitery/wordgrid/game/tile"
	"github.com/zlitery/wordgrid/game/word"
	"github.com/zlitery/wordgrid/server"
	"github.com/zlitery/wordgrid/server/auth"
	"github.com/zlitery/wordgrid/server/certificate"
	serverchat "github.com/zlitery/wordgrid/server/chat"
	"github.com/zlitery/wordgrid/server/chat/gorilla"
	servergame "github.com/zlitery/wordgrid/server/game"
	_ "github.com/lib/pq" // register "postgres" database driver from package init() function
)

// queryPeriod is the amount of time each database operation can take before it is cancelled.
const queryPeriod = 5 * time.Second

// lexiconCacheSize is how many recent word checks database-backed lexicons remember.
const lexiconCacheSize = 16384

// newServer builds the server and its dependencies from the flags.
func newServer(ctx context.Context, m mainFlags, log *log.Logger) (*server.Server, error) {
	timeFunc := func() int64 {
		return time.Now().UTC().Unix()
	}
	tokenizerCfg := tokenizerConfig(crypto_rand.Reader, timeFunc)
	tokenizer, err := tokenizerCfg.NewTokenizer()
	if err != nil {
		return nil, fmt.Errorf("creating authentication tokenizer: %w", err)
	}
	if len(m.databaseURL) == 0 {
		return nil, fmt.Errorf("missing data-source uri")
	}
	sqlDB, err := sqlDatabase(m)
	if err != nil {
		return nil, fmt.Errorf("creating SQL database: %w", err)
	}
	sqlFiles, err := setupSQLFiles()
	if err != nil {
		return nil, fmt.Errorf("loading setup files: %w", err)
	}
	if err := sqlDB.Setup(ctx, sqlFiles); err != nil {
		return nil, fmt.Errorf("setting up database: %w", err)
	}
	ud, err := userDao(ctx, m, sqlDB, timeFunc)
	if err != nil {
		return nil, fmt.Errorf("creating user dao: %w", err)
	}
	gameDao, err := gamedb.NewDao(sqlDB)
	if err != nil {
		return nil, fmt.Errorf("creating game dao: %w", err)
	}
	rankingDao, err := ranking.NewDao(sqlDB)
	if err != nil {
		return nil, fmt.Errorf("creating ranking dao: %w", err)
	}
	chatDaoCfg := chatdb.DaoConfig{
		DB:       sqlDB,
		TimeFunc: timeFunc,
	}
	chatDao, err := chatDaoCfg.NewDao()
	if err != nil {
		return nil, fmt.Errorf("creating chat dao: %w", err)
	}
	lexicons, err := lexicons(ctx, m, sqlDB, log)
	if err != nil {
		return nil, fmt.Errorf("creating lexicons: %w", err)
	}
	registryCfg := servergame.RegistryConfig{
		Log:         log,
		Lexicons:    lexicons,
		ShuffleFunc: shuffleTiles,
		TimeFunc:    timeFunc,
	}
	registry, err := registryCfg.NewRegistry(gameDao, rankingDao)
	if err != nil {
		return nil, fmt.Errorf("creating game registry: %w", err)
	}
	hubCfg := serverchat.HubConfig{
		Log: log,
	}
	hub, err := hubCfg.NewHub(chatDao)
	if err != nil {
		return nil, fmt.Errorf("creating chat hub: %w", err)
	}
	upgraderCfg := gorilla.Config{
		ReadWait:  60 * time.Second,
		WriteWait: 10 * time.Second,
	}
	socketCfg := serverchat.Config{
		Log:        log,
		PingPeriod: 54 * time.Second, // readWait * 0.9
		QueueSize:  32,
	}
	h := server.Handlers{
		Tokenizer:    tokenizer,
		UserDao:      ud,
		Games:        registry,
		Chat:         hub,
		Upgrader:     upgraderCfg.NewUpgrader(),
		SocketConfig: socketCfg,
		Rankings:     rankingDao,
		History:      gameDao,
	}
	cfg := server.Config{
		HTTPPort:  m.httpPort,
		HTTPSPort: m.httpsPort,
		StopDur:   time.Second,
		Challenge: certificate.Challenge{
			Token: m.challengeToken,
			Key:   m.challengeKey,
		},
		TLSCertFile:   m.tlsCertFile,
		TLSKeyFile:    m.tlsKeyFile,
		NoTLSRedirect: m.noTLSRedirect,
	}
	return cfg.NewServer(log, h)
}

// tokenizerConfig creates the configuration for authentication token reader/writer.
func tokenizerConfig(keyReader io.Reader, timeFunc func() int64) auth.TokenizerConfig {
	var tokenValidDurationSec int64 = int64((24 * time.Hour).Seconds()) // 1 day
	cfg := auth.TokenizerConfig{
		KeyReader: keyReader,
		TimeFunc:  timeFunc,
		ValidSec:  tokenValidDurationSec,
	}
	return cfg
}

// sqlDatabase creates the SQL database that persists games, moves, chat, and rankings.
func sqlDatabase(m mainFlags) (db.Database, error) {
	cfg := sql.DatabaseConfig{
		DriverName:  "postgres",
		DatabaseURL: m.databaseURL,
		Config: db.Config{
			QueryPeriod: queryPeriod,
		},
	}
	return cfg.NewDatabase()
}

// userDao creates the user dao on the backend the user-backend flag selects.
func userDao(ctx context.Context, m mainFlags, sqlDB db.Database, timeFunc func() int64) (*user.Dao, error) {
	backend, err := userBackend(ctx, m, sqlDB, timeFunc)
	if err != nil {
		return nil, err
	}
	cfg := user.DaoConfig{
		Backend:         backend,
		PasswordHandler: bcrypt.NewPasswordHandler(),
	}
	return cfg.NewDao()
}

// userBackend creates the store for user accounts.
func userBackend(ctx context.Context, m mainFlags, sqlDB db.Database, timeFunc func() int64) (user.Backend, error) {
	dbCfg := db.Config{
		QueryPeriod: queryPeriod,
	}
	switch m.userBackend {
	case "postgres":
		return postgres.NewUserBackend(sqlDB)
	case "mongo":
		backend, err := mongo.NewUserBackend(ctx, dbCfg, m.mongoURL, timeFunc)
		if err != nil {
			return nil, err
		}
		if err := backend.Setup(ctx); err != nil {
			return nil, fmt.Errorf("setting up mongo user backend: %w", err)
		}
		return backend, nil
	case "firestore":
		return firestore.NewUserBackend(ctx, dbCfg, m.firestoreProjectID, timeFunc)
	}
	return nil, fmt.Errorf("unknown user backend: %q", m.userBackend)
}

// lexicons creates a word source per supported language.  Languages with a
// word-list file check words in memory after seeding the dictionary table;
// the rest check the dictionary table through an LRU cache.
func lexicons(ctx context.Context, m mainFlags, sqlDB db.Database, log *log.Logger) (map[string]word.Lexicon, error) {
	wordsFiles := map[string]string{
		"en": m.wordsEnFile,
		"pl": m.wordsPlFile,
	}
	lexicons := make(map[string]word.Lexicon, len(alphabet.Languages()))
	for _, lang := range alphabet.Languages() {
		a, err := alphabet.ByLanguage(lang)
		if err != nil {
			return nil, err
		}
		dictCfg := dictionary.Config{
			DB:       sqlDB,
			Language: lang,
		}
		dict, err := dictCfg.NewLexicon()
		if err != nil {
			return nil, err
		}
		wordsFile := wordsFiles[lang]
		if len(wordsFile) == 0 {
			cached, err := word.NewCached(dict, lexiconCacheSize)
			if err != nil {
				return nil, err
			}
			lexicons[lang] = cached
			continue
		}
		set, err := wordSet(ctx, wordsFile, a, dict, log)
		if err != nil {
			return nil, fmt.Errorf("loading %v words: %w", lang, err)
		}
		lexicons[lang] = set
	}
	return lexicons, nil
}

// wordSet loads the word-list file into memory and seeds the dictionary table with it.
func wordSet(ctx context.Context, filename string, a *alphabet.Alphabet, dict *dictionary.Lexicon, log *log.Logger) (*word.Set, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening words file: %w", err)
	}
	defer f.Close()
	cfg := word.Config{
		Normalize: a.Normalize,
	}
	set, err := cfg.NewSet(f)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding words file: %w", err)
	}
	n, err := dict.Seed(ctx, f, a.Normalize)
	if err != nil {
		return nil, fmt.Errorf("seeding dictionary: %w", err)
	}
	log.Printf("seeded %v dictionary with %v words from %v", dict.Language, n, filename)
	return set, nil
}

// shuffleTiles randomizes the order of bag tiles.
func shuffleTiles(tiles []tile.Letter) {
	frand.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
}
