package lessons

import (
	"fmt"
	"math/rand/v2"
)

func lessonSelect() Lesson {
	return Lesson{
		ID:    1,
		Title: "SELECT Basics",
		Theme: "Space: planets, moons, distances",
		Schema: `CREATE TABLE planets (name TEXT, type TEXT, diameter_km INT, distance_au REAL, moons INT, has_rings INT);
INSERT INTO planets VALUES ('Mercury','rocky',4879,0.39,0,0),('Venus','rocky',12104,0.72,0,0),('Earth','rocky',12756,1.0,1,0),('Mars','rocky',6792,1.52,2,0),('Jupiter','gas giant',142984,5.20,95,1),('Saturn','gas giant',120536,9.58,146,1),('Uranus','ice giant',51118,19.22,28,1),('Neptune','ice giant',49528,30.05,16,1),('Pluto','dwarf',2376,39.48,5,0);`,
		SchemaDisplay: "planets(name TEXT, type TEXT, diameter_km INT, distance_au REAL, moons INT, has_rings INT)",
		DefaultQuery:  "SELECT * FROM planets;",
		Exercises: []Exercise{
			{
				Instruction: "Select all columns from the planets table.",
				Hint:        "Use SELECT * FROM table_name",
				Solution:    "SELECT * FROM planets",
			},
			{
				Instruction: "Select only the name and type of each planet.",
				Hint:        "List columns separated by commas after SELECT",
				Solution:    "SELECT name, type FROM planets",
			},
			{
				Instruction: "Select the name, diameter_km, and moons columns.",
				Hint:        "SELECT col1, col2, col3 FROM table",
				Solution:    "SELECT name, diameter_km, moons FROM planets",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				c := Pick(r, "name", "type", "diameter_km", "distance_au", "moons")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Select only the %s column from the planets table.", c),
					Solution: fmt.Sprintf("SELECT %s FROM planets", c),
				}
			},
			func(r *rand.Rand) Question {
				cols := Shuffle(r, []string{"name", "type", "diameter_km", "distance_au", "moons", "has_rings"})
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Select the %s and %s columns from planets.", cols[0], cols[1]),
					Solution: fmt.Sprintf("SELECT %s, %s FROM planets", cols[0], cols[1]),
				}
			},
			writeQ("Select all columns from the planets table.", "SELECT * FROM planets"),
			choice("What does SELECT * mean in SQL?",
				"Select all columns", "Select all tables", "Delete everything", "Create a new table"),
			choice("Which keyword tells SQL which table to query?",
				"FROM", "WHERE", "SELECT", "INTO"),
			fixQ("Fix this broken query:", "SELCT name FORM planets;", "SELECT name FROM planets;"),
			fixQ("Fix this query (missing keyword):", "name, type planets;", "SELECT name, type FROM planets;"),
		},
	}
}

func lessonWhere() Lesson {
	return Lesson{
		ID:    2,
		Title: "WHERE Clauses",
		Theme: "RPG: heroes, classes, levels",
		Schema: `CREATE TABLE heroes (name TEXT, class TEXT, level INT, hp INT, attack INT, defense INT, is_alive INT);
INSERT INTO heroes VALUES ('Aldric','Warrior',15,320,45,60,1),('Luna','Mage',22,180,70,25,1),('Shadow','Rogue',18,200,55,30,1),('Theron','Warrior',8,250,35,50,1),('Ivy','Healer',20,150,20,35,1),('Grimm','Warrior',25,400,60,70,1),('Sera','Mage',12,160,50,20,1),('Dax','Rogue',5,120,30,15,0),('Mira','Healer',16,175,25,40,1),('Bolt','Mage',30,220,80,30,1);`,
		SchemaDisplay: "heroes(name TEXT, class TEXT, level INT, hp INT, attack INT, defense INT, is_alive INT)",
		DefaultQuery:  "SELECT * FROM heroes;",
		Exercises: []Exercise{
			{
				Instruction: "Select all Warriors (class = 'Warrior').",
				Hint:        "Use WHERE class = 'Warrior'",
				Solution:    "SELECT * FROM heroes WHERE class = 'Warrior'",
			},
			{
				Instruction: "Find all heroes with level greater than 15.",
				Hint:        "Use WHERE level > 15",
				Solution:    "SELECT * FROM heroes WHERE level > 15",
			},
			{
				Instruction: "Find all living Mages (class = 'Mage' AND is_alive = 1).",
				Hint:        "Combine conditions with AND",
				Solution:    "SELECT * FROM heroes WHERE class = 'Mage' AND is_alive = 1",
			},
			{
				Instruction: "Find heroes with attack > 40 OR defense > 50.",
				Hint:        "Use OR to match either condition",
				Solution:    "SELECT * FROM heroes WHERE attack > 40 OR defense > 50",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				cls := Pick(r, "Warrior", "Mage", "Rogue", "Healer")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Select all heroes whose class is '%s'.", cls),
					Solution: fmt.Sprintf("SELECT * FROM heroes WHERE class = '%s'", cls),
				}
			},
			func(r *rand.Rand) Question {
				lvl := IntBetween(r, 8, 20)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find all heroes with level greater than %d.", lvl),
					Solution: fmt.Sprintf("SELECT * FROM heroes WHERE level > %d", lvl),
				}
			},
			func(r *rand.Rand) Question {
				hp := IntBetween(r, 150, 300)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Select names of heroes with hp less than %d.", hp),
					Solution: fmt.Sprintf("SELECT name FROM heroes WHERE hp < %d", hp),
				}
			},
			choice("What does AND do in a WHERE clause?",
				"Both conditions must be true", "Either condition can be true", "Negates the condition", "Sorts the results"),
			choice("What does WHERE level != 10 mean?",
				"Level is not equal to 10", "Level is 10", "Level is null", "Syntax error"),
			fixQ("Fix this query:", "SELECT * FROM heroes WHERE class = Warrior;", "SELECT * FROM heroes WHERE class = 'Warrior';"),
			fixQ("Fix this query:", "SELECT * FROM heroes level > 10;", "SELECT * FROM heroes WHERE level > 10;"),
		},
	}
}

func lessonOrderBy() Lesson {
	return Lesson{
		ID:    3,
		Title: "ORDER BY",
		Theme: "Music: songs, artists, years",
		Schema: `CREATE TABLE songs (title TEXT, artist TEXT, genre TEXT, duration_sec INT, year INT, streams_millions INT);
INSERT INTO songs VALUES ('Midnight Run','Nova','Pop',210,2021,850),('Thunder Road','Axel Stone','Rock',245,2019,420),('Quiet Storm','Luna Bay','R&B',198,2022,630),('Binary Dreams','Synthex','Electronic',183,2020,510),('Broken Crown','The Willows','Rock',276,2018,390),('Sunlit','Mara Gold','Pop',195,2023,920),('Deep Blue','Oceanic','Electronic',222,2021,480),('Wildfire','Axel Stone','Rock',258,2022,550),('Paper Moon','Luna Bay','R&B',201,2020,410),('Neon Lights','Synthex','Electronic',190,2023,700);`,
		SchemaDisplay: "songs(title TEXT, artist TEXT, genre TEXT, duration_sec INT, year INT, streams_millions INT)",
		DefaultQuery:  "SELECT * FROM songs;",
		Exercises: []Exercise{
			{
				Instruction: "Select all songs ordered by year (oldest first).",
				Hint:        "Use ORDER BY year or ORDER BY year ASC",
				Solution:    "SELECT * FROM songs ORDER BY year ASC",
			},
			{
				Instruction: "Select all songs ordered by streams descending (most popular first).",
				Hint:        "Use ORDER BY column DESC",
				Solution:    "SELECT * FROM songs ORDER BY streams_millions DESC",
			},
			{
				Instruction: "Select title and genre, ordered by genre then by title.",
				Hint:        "ORDER BY genre, title",
				Solution:    "SELECT title, genre FROM songs ORDER BY genre, title",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				col := Pick(r, "year", "duration_sec", "streams_millions")
				dir, word := Pick(r, "ASC", "DESC"), "ascending"
				if dir == "DESC" {
					word = "descending"
				}
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Select all songs ordered by %s %s.", col, word),
					Solution: fmt.Sprintf("SELECT * FROM songs ORDER BY %s %s", col, dir),
				}
			},
			func(r *rand.Rand) Question {
				col := Pick(r, "title", "artist")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Select title and artist, ordered alphabetically by %s.", col),
					Solution: fmt.Sprintf("SELECT title, artist FROM songs ORDER BY %s ASC", col),
				}
			},
			choice("What is the default sort order for ORDER BY?",
				"Ascending (ASC)", "Descending (DESC)", "Random", "Alphabetical only"),
			choice("Where does ORDER BY go in a query?",
				"After WHERE and before LIMIT", "Before FROM", "Before WHERE", "Inside SELECT"),
			fixQ("Fix this query:", "SELECT * FROM songs ORDERBY year;", "SELECT * FROM songs ORDER BY year;"),
			fixQ("Fix this query:", "SELECT * FROM songs ORDER year DESC;", "SELECT * FROM songs ORDER BY year DESC;"),
		},
	}
}

func lessonLimit() Lesson {
	return Lesson{
		ID:    4,
		Title: "LIMIT & OFFSET",
		Theme: "Movies: titles, ratings, box office",
		Schema: `CREATE TABLE movies (title TEXT, genre TEXT, year INT, rating REAL, box_office_millions INT);
INSERT INTO movies VALUES ('Star Odyssey','Sci-Fi',2020,8.4,650),('The Last Dance','Drama',2019,7.9,320),('Neon City','Action',2022,7.2,480),('Whisper','Horror',2021,6.8,120),('Golden Age','Drama',2023,8.7,890),('Pixel Wars','Sci-Fi',2018,7.5,410),('Crimson Tide','Action',2021,6.5,290),('Moonfall','Sci-Fi',2022,8.1,530),('The Garden','Drama',2020,7.8,250),('Velocity','Action',2023,7.0,380);`,
		SchemaDisplay: "movies(title TEXT, genre TEXT, year INT, rating REAL, box_office_millions INT)",
		DefaultQuery:  "SELECT * FROM movies;",
		Exercises: []Exercise{
			{
				Instruction: "Select the first 5 movies.",
				Hint:        "Use LIMIT 5",
				Solution:    "SELECT * FROM movies LIMIT 5",
			},
			{
				Instruction: "Select the top 3 movies by rating (highest first).",
				Hint:        "ORDER BY rating DESC LIMIT 3",
				Solution:    "SELECT * FROM movies ORDER BY rating DESC LIMIT 3",
			},
			{
				Instruction: "Skip the first 3 movies and show the next 4.",
				Hint:        "Use LIMIT 4 OFFSET 3",
				Solution:    "SELECT * FROM movies LIMIT 4 OFFSET 3",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				n := IntBetween(r, 2, 6)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Select the first %d movies from the table.", n),
					Solution: fmt.Sprintf("SELECT * FROM movies LIMIT %d", n),
				}
			},
			func(r *rand.Rand) Question {
				n := IntBetween(r, 2, 4)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Select the top %d movies by box_office_millions (highest first).", n),
					Solution: fmt.Sprintf("SELECT * FROM movies ORDER BY box_office_millions DESC LIMIT %d", n),
				}
			},
			func(r *rand.Rand) Question {
				off := IntBetween(r, 2, 5)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Skip the first %d movies and return the next 3.", off),
					Solution: fmt.Sprintf("SELECT * FROM movies LIMIT 3 OFFSET %d", off),
				}
			},
			choice("What does LIMIT 5 OFFSET 10 return?",
				"Rows 11 through 15", "Rows 1 through 5", "Rows 5 through 10", "Rows 10 through 15"),
			choice("Where does LIMIT go in a SQL query?",
				"At the end, after ORDER BY", "Before FROM", "Before WHERE", "Before ORDER BY"),
			fixQ("Fix this query:", "SELECT * FROM movies LIMIT 3 OFFSET;", "SELECT * FROM movies LIMIT 3 OFFSET 0;"),
		},
	}
}

func lessonDistinct() Lesson {
	return Lesson{
		ID:    5,
		Title: "DISTINCT",
		Theme: "Pet Shelter: animals, breeds, ages",
		Schema: `CREATE TABLE animals (name TEXT, species TEXT, breed TEXT, age INT, weight_kg REAL, adopted INT);
INSERT INTO animals VALUES ('Bella','Dog','Labrador',3,28.5,1),('Max','Dog','German Shepherd',5,35.0,0),('Whiskers','Cat','Tabby',2,4.5,1),('Luna','Cat','Siamese',4,3.8,0),('Charlie','Dog','Labrador',1,22.0,0),('Mittens','Cat','Tabby',6,5.2,1),('Rocky','Dog','Bulldog',4,25.0,0),('Shadow','Cat','Persian',3,4.0,0),('Daisy','Dog','Labrador',2,24.0,1),('Cleo','Cat','Siamese',1,3.2,0);`,
		SchemaDisplay: "animals(name TEXT, species TEXT, breed TEXT, age INT, weight_kg REAL, adopted INT)",
		DefaultQuery:  "SELECT * FROM animals;",
		Exercises: []Exercise{
			{
				Instruction: "Select all unique species from the animals table.",
				Hint:        "SELECT DISTINCT species FROM animals",
				Solution:    "SELECT DISTINCT species FROM animals",
			},
			{
				Instruction: "Select all unique breed values.",
				Hint:        "Use DISTINCT with the breed column",
				Solution:    "SELECT DISTINCT breed FROM animals",
			},
			{
				Instruction: "Count how many distinct breeds there are.",
				Hint:        "Use COUNT(DISTINCT breed)",
				Solution:    "SELECT COUNT(DISTINCT breed) FROM animals",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				col := Pick(r, "species", "breed")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Select all unique %s values from the animals table.", col),
					Solution: fmt.Sprintf("SELECT DISTINCT %s FROM animals", col),
				}
			},
			writeQ("Select unique combinations of species and breed.", "SELECT DISTINCT species, breed FROM animals"),
			func(r *rand.Rand) Question {
				col := Pick(r, "species", "breed")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Count the number of distinct %s values.", col),
					Solution: fmt.Sprintf("SELECT COUNT(DISTINCT %s) FROM animals", col),
				}
			},
			choice("What does DISTINCT do?",
				"Removes duplicate rows from results", "Sorts the results", "Limits the number of rows", "Filters rows by condition"),
			choice("SELECT DISTINCT species, breed returns unique...",
				"Combinations of species and breed", "Species only", "Breeds only", "All rows"),
			fixQ("Fix this query:", "SELECT DISTICT species FROM animals;", "SELECT DISTINCT species FROM animals;"),
		},
	}
}
