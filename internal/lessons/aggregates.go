package lessons

import (
	"fmt"
	"math/rand/v2"
)

func lessonAggregates() Lesson {
	return Lesson{
		ID:    6,
		Title: "Aggregate Functions",
		Theme: "Sports: teams, players, scores",
		Schema: `CREATE TABLE players (name TEXT, team TEXT, position TEXT, goals INT, assists INT, salary INT);
INSERT INTO players VALUES ('Kane','Wolves','Forward',22,8,90000),('Silva','Eagles','Midfielder',12,15,75000),('Bruno','Wolves','Midfielder',18,20,85000),('Lee','Titans','Forward',25,5,95000),('Chen','Eagles','Forward',14,9,70000),('Garcia','Titans','Defender',3,7,60000),('Rossi','Wolves','Defender',5,4,65000),('Park','Eagles','Midfielder',10,12,72000),('Torres','Titans','Forward',20,11,88000),('Smith','Wolves','Forward',16,6,78000),('Ali','Eagles','Defender',2,8,55000),('Jones','Titans','Midfielder',8,14,68000);`,
		SchemaDisplay: "players(name TEXT, team TEXT, position TEXT, goals INT, assists INT, salary INT)",
		DefaultQuery:  "SELECT * FROM players;",
		Exercises: []Exercise{
			{
				Instruction: "Count the total number of players.",
				Hint:        "Use COUNT(*)",
				Solution:    "SELECT COUNT(*) FROM players",
			},
			{
				Instruction: "Find the total goals scored by all players.",
				Hint:        "Use SUM(goals)",
				Solution:    "SELECT SUM(goals) FROM players",
			},
			{
				Instruction: "Find the highest salary among all players.",
				Hint:        "Use MAX(salary)",
				Solution:    "SELECT MAX(salary) FROM players",
			},
			{
				Instruction: "Find the average goals for the 'Wolves' team.",
				Hint:        "Use AVG(goals) with WHERE team = 'Wolves'",
				Solution:    "SELECT AVG(goals) FROM players WHERE team = 'Wolves'",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				fn := Pick(r, "COUNT", "SUM", "AVG", "MIN", "MAX")
				col := "*"
				if fn != "COUNT" {
					col = Pick(r, "goals", "assists", "salary")
				}
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Use %s(%s) on the players table.", fn, col),
					Solution: fmt.Sprintf("SELECT %s(%s) FROM players", fn, col),
				}
			},
			func(r *rand.Rand) Question {
				team := Pick(r, "Wolves", "Eagles", "Titans")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find the total goals scored by the '%s' team.", team),
					Solution: fmt.Sprintf("SELECT SUM(goals) FROM players WHERE team = '%s'", team),
				}
			},
			func(r *rand.Rand) Question {
				fn, word := Pick(r, "MIN", "MAX"), "highest"
				if fn == "MIN" {
					word = "lowest"
				}
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find the %s salary.", word),
					Solution: fmt.Sprintf("SELECT %s(salary) FROM players", fn),
				}
			},
			choice("What does COUNT(*) count?",
				"All rows including NULLs", "Only non-NULL values", "Only distinct values", "Only numeric values"),
			choice("What does AVG(goals) return?",
				"The average of the goals column", "The total goals", "The number of players with goals", "The median goals"),
			fixQ("Fix this query:", "SELECT AVERAGE(goals) FROM players;", "SELECT AVG(goals) FROM players;"),
			fixQ("Fix this query:", "SELECT MAX salary FROM players;", "SELECT MAX(salary) FROM players;"),
		},
	}
}

func lessonGroupBy() Lesson {
	aggregates := []struct{ expr, label string }{
		{"COUNT(*)", "count of books"},
		{"AVG(price)", "average price"},
		{"SUM(copies_sold)", "total copies sold"},
		{"MAX(pages)", "longest book (pages)"},
	}

	return Lesson{
		ID:    7,
		Title: "GROUP BY",
		Theme: "Bookstore: books, genres, sales",
		Schema: `CREATE TABLE books (title TEXT, author TEXT, genre TEXT, pages INT, price REAL, copies_sold INT);
INSERT INTO books VALUES ('Starfall','Nyx','Sci-Fi',320,14.99,45000),('The Deep','Marina','Mystery',280,12.99,32000),('Iron Bloom','Nyx','Sci-Fi',410,16.99,38000),('Red Cloak','Elena','Fantasy',350,13.99,52000),('Still Water','Marina','Mystery',240,11.99,28000),('Sky Realm','Tai','Fantasy',390,15.99,61000),('Neuron','Nyx','Sci-Fi',290,13.99,41000),('The Signal','Dev','Non-Fiction',200,9.99,22000),('Wild Hearts','Elena','Romance',310,12.99,48000),('Code Blue','Dev','Non-Fiction',180,10.99,19000),('Dark Forest','Tai','Fantasy',420,17.99,55000),('Love Note','Elena','Romance',260,11.99,37000);`,
		SchemaDisplay: "books(title TEXT, author TEXT, genre TEXT, pages INT, price REAL, copies_sold INT)",
		DefaultQuery:  "SELECT * FROM books;",
		Exercises: []Exercise{
			{
				Instruction: "Count the number of books in each genre.",
				Hint:        "SELECT genre, COUNT(*) FROM books GROUP BY genre",
				Solution:    "SELECT genre, COUNT(*) FROM books GROUP BY genre",
			},
			{
				Instruction: "Find the average price per genre.",
				Hint:        "Use AVG(price) with GROUP BY genre",
				Solution:    "SELECT genre, AVG(price) FROM books GROUP BY genre",
			},
			{
				Instruction: "Find total copies sold per author.",
				Hint:        "SUM(copies_sold) GROUP BY author",
				Solution:    "SELECT author, SUM(copies_sold) FROM books GROUP BY author",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				agg := Pick(r, aggregates...)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find the %s per genre.", agg.label),
					Solution: fmt.Sprintf("SELECT genre, %s FROM books GROUP BY genre", agg.expr),
				}
			},
			writeQ("Find the total copies sold per author.", "SELECT author, SUM(copies_sold) FROM books GROUP BY author"),
			writeQ("Count how many books each author has written.", "SELECT author, COUNT(*) FROM books GROUP BY author"),
			choice("What does GROUP BY do?",
				"Groups rows with same values so aggregates work per group", "Sorts the results", "Filters rows", "Joins two tables"),
			choice("If you SELECT genre, COUNT(*) but forget GROUP BY genre, what happens?",
				"An error or unexpected single-row result", "It works fine", "It returns duplicates", "It sorts by genre"),
			fixQ("Fix this query:", "SELECT genre COUNT(*) FROM books GROUP BY genre;", "SELECT genre, COUNT(*) FROM books GROUP BY genre;"),
		},
	}
}

func lessonHaving() Lesson {
	return Lesson{
		ID:    8,
		Title: "HAVING",
		Theme: "Restaurant: menu, calories, prices",
		Schema: `CREATE TABLE menu_items (name TEXT, category TEXT, price REAL, calories INT, is_vegetarian INT, prep_time_min INT);
INSERT INTO menu_items VALUES ('Caesar Salad','Appetizer',8.99,350,1,5),('Bruschetta','Appetizer',7.99,280,1,8),('Grilled Salmon','Main',18.99,520,0,15),('Mushroom Risotto','Main',15.99,480,1,20),('Steak','Main',24.99,700,0,18),('Chicken Wrap','Main',12.99,450,0,10),('Tiramisu','Dessert',9.99,420,1,5),('Chocolate Cake','Dessert',8.99,550,1,3),('Lemonade','Drink',3.99,120,1,2),('Espresso','Drink',2.99,5,1,1),('Iced Tea','Drink',3.49,80,1,2),('Garlic Bread','Appetizer',5.99,310,1,6);`,
		SchemaDisplay: "menu_items(name TEXT, category TEXT, price REAL, calories INT, is_vegetarian INT, prep_time_min INT)",
		DefaultQuery:  "SELECT * FROM menu_items;",
		Exercises: []Exercise{
			{
				Instruction: "Find categories where the average price is greater than 8.",
				Hint:        "GROUP BY category HAVING AVG(price) > 8",
				Solution:    "SELECT category, AVG(price) FROM menu_items GROUP BY category HAVING AVG(price) > 8",
			},
			{
				Instruction: "Find categories with more than 2 items.",
				Hint:        "GROUP BY category HAVING COUNT(*) > 2",
				Solution:    "SELECT category, COUNT(*) FROM menu_items GROUP BY category HAVING COUNT(*) > 2",
			},
			{
				Instruction: "Find categories where total calories exceed 800.",
				Hint:        "SUM(calories) > 800",
				Solution:    "SELECT category, SUM(calories) FROM menu_items GROUP BY category HAVING SUM(calories) > 800",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				thresh := Pick(r, 7, 8, 9, 10)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find categories where average price is greater than %d.", thresh),
					Solution: fmt.Sprintf("SELECT category, AVG(price) FROM menu_items GROUP BY category HAVING AVG(price) > %d", thresh),
				}
			},
			func(r *rand.Rand) Question {
				n := Pick(r, 2, 3)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find categories with more than %d items.", n),
					Solution: fmt.Sprintf("SELECT category, COUNT(*) FROM menu_items GROUP BY category HAVING COUNT(*) > %d", n),
				}
			},
			choice("What is the difference between WHERE and HAVING?",
				"WHERE filters rows before grouping; HAVING filters after", "They are the same",
				"WHERE is for numbers, HAVING for text", "HAVING comes before GROUP BY"),
			choice("Can you use HAVING without GROUP BY?",
				"Technically yes, but it rarely makes sense", "No, it causes an error", "Yes, it works like WHERE", "Only with COUNT"),
			fixQ("Fix this query (uses WHERE instead of HAVING):",
				"SELECT category, AVG(price) FROM menu_items GROUP BY category WHERE AVG(price) > 10;",
				"SELECT category, AVG(price) FROM menu_items GROUP BY category HAVING AVG(price) > 10;"),
			fixQ("Fix this query:",
				"SELECT category, COUNT(*) FROM menu_items GROUP BY category HAVING > 2;",
				"SELECT category, COUNT(*) FROM menu_items GROUP BY category HAVING COUNT(*) > 2;"),
		},
	}
}
